package scan

// Report holds raw lines of a request head. All slices point into the scanner's
// buffer and stay valid until the scanner is released
type Report struct {
	RequestLine []byte
	Fields      [][]byte
}

type Scanner interface {
	// Scan may be fed the request head in any number of chunks. Done is reported on the
	// first empty line; rest is whatever follows it
	Scan(data []byte) (done bool, rest []byte, err error)
	// Finish treats the end of input as the end of the head
	Finish() error
	Report() Report
	Release()
}
