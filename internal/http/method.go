package http

type Method uint8

const (
	MethodGET Method = iota
	MethodHEAD
	MethodNotImplemented
)

var methodTable = []struct {
	name   string
	method Method
}{
	{"GET", MethodGET},
	{"HEAD", MethodHEAD},
	{"TEST", MethodNotImplemented},
	{"ECHO", MethodNotImplemented},
	{"OPTIONS", MethodNotImplemented},
	{"POST", MethodNotImplemented},
	{"PUT", MethodNotImplemented},
	{"DELETE", MethodNotImplemented},
	{"TRACE", MethodNotImplemented},
	{"CONNECT", MethodNotImplemented},
}

// LookupMethod returns MethodNotImplemented for every name not listed as implemented,
// including names the table doesn't know at all. Names are case-sensitive
func LookupMethod(name string) Method {
	for _, entry := range methodTable {
		if entry.name == name {
			return entry.method
		}
	}

	return MethodNotImplemented
}

func (m Method) String() string {
	switch m {
	case MethodGET:
		return "GET"
	case MethodHEAD:
		return "HEAD"
	default:
		return "not implemented"
	}
}
