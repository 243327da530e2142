package http1

import (
	"bytes"
	"github.com/indigo-web/utils/arena"
	"github.com/wolframreinke/distsys-pe/internal/scan"
)

const (
	DefaultInitialSpace = 1024
	// DefaultMaxSpace limits the whole request head, including the request line
	DefaultMaxSpace = 8 * 1024
)

// Scanner splits a request head into the request line and header field lines on CRLF
// boundaries. A lone CR or LF is considered a part of the line. Lines are stored in
// the arena, so the buffer's hard limit is the limit of the request head
type Scanner struct {
	state       scannerState
	buffer      *arena.Arena[byte]
	requestLine []byte
	fields      [][]byte
}

func NewScanner(buffer *arena.Arena[byte]) *Scanner {
	return &Scanner{
		buffer: buffer,
		fields: make([][]byte, 0, 16),
	}
}

func (s *Scanner) Scan(data []byte) (done bool, rest []byte, err error) {
	var pos int

	switch s.state {
	case eRequestLine:
		goto requestLine
	case eRequestLineCR:
		goto requestLineCR
	case eField:
		goto field
	case eFieldCR:
		goto fieldCR
	case eDone:
		return true, data, ErrScanFinished
	default:
		panic("BUG: unknown scanner state")
	}

requestLine:
	pos = bytes.IndexByte(data, '\r')
	if pos == -1 {
		if !s.buffer.Append(data...) {
			return true, nil, ErrTooLarge
		}

		return false, nil, nil
	}

	if !s.buffer.Append(data[:pos]...) {
		return true, nil, ErrTooLarge
	}

	data = data[pos+1:]
	s.state = eRequestLineCR

requestLineCR:
	if len(data) == 0 {
		return false, nil, nil
	}

	if data[0] != '\n' {
		if !s.buffer.Append('\r') {
			return true, nil, ErrTooLarge
		}

		s.state = eRequestLine
		goto requestLine
	}

	data = data[1:]
	s.requestLine = s.buffer.Finish()
	s.state = eField

field:
	pos = bytes.IndexByte(data, '\r')
	if pos == -1 {
		if !s.buffer.Append(data...) {
			return true, nil, ErrTooLarge
		}

		return false, nil, nil
	}

	if !s.buffer.Append(data[:pos]...) {
		return true, nil, ErrTooLarge
	}

	data = data[pos+1:]
	s.state = eFieldCR

fieldCR:
	if len(data) == 0 {
		return false, nil, nil
	}

	if data[0] != '\n' {
		if !s.buffer.Append('\r') {
			return true, nil, ErrTooLarge
		}

		s.state = eField
		goto field
	}

	data = data[1:]

	{
		line := s.buffer.Finish()
		if len(line) == 0 {
			s.state = eDone

			return true, data, nil
		}

		s.fields = append(s.fields, line)
	}

	s.state = eField
	goto field
}

// Finish is called when the input ends before an empty line. A pending line, even
// if not terminated by CRLF, is taken as it is
func (s *Scanner) Finish() error {
	switch s.state {
	case eRequestLineCR:
		if !s.buffer.Append('\r') {
			return ErrTooLarge
		}

		fallthrough
	case eRequestLine:
		s.requestLine = s.buffer.Finish()
		s.state = eDone

		if len(s.requestLine) == 0 {
			return ErrNoRequestLine
		}
	case eFieldCR:
		if !s.buffer.Append('\r') {
			return ErrTooLarge
		}

		fallthrough
	case eField:
		if line := s.buffer.Finish(); len(line) > 0 {
			s.fields = append(s.fields, line)
		}

		s.state = eDone
	case eDone:
	default:
		panic("BUG: unknown scanner state")
	}

	return nil
}

func (s *Scanner) Report() scan.Report {
	return scan.Report{
		RequestLine: s.requestLine,
		Fields:      s.fields,
	}
}

func (s *Scanner) Release() {
	s.buffer.Clear()
	s.requestLine = nil
	s.fields = s.fields[:0]
	s.state = eRequestLine
}
