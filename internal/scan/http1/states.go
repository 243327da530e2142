package http1

type scannerState int

const (
	eRequestLine scannerState = iota
	eRequestLineCR
	eField
	eFieldCR
	eDone
)
