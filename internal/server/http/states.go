package http

type connState int

const (
	eAccepted connState = iota
	eReading
	eParsed
	eResolved
	eResponded
	eLogged
	eTerminated
)

func (s connState) String() string {
	switch s {
	case eAccepted:
		return "accepted"
	case eReading:
		return "reading"
	case eParsed:
		return "parsed"
	case eResolved:
		return "resolved"
	case eResponded:
		return "responded"
	case eLogged:
		return "logged"
	case eTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
