package transmit

import (
	"fmt"
	"github.com/wolframreinke/distsys-pe/internal/cgi"
	"github.com/wolframreinke/distsys-pe/internal/http"
	"io"
	"os"
	"strconv"
	"time"
)

const ServerName = "TinyWeb"

var (
	protocol      = []byte("HTTP/1.1 ")
	crlf          = []byte("\r\n")
	dateKey       = []byte("Date: ")
	serverField   = []byte("Server: " + ServerName + "\r\n")
	lastModKey    = []byte("Last-Modified: ")
	acceptRanges  = []byte("Accept-Ranges: bytes\r\n")
	connection    = []byte("Connection: close\r\n")
	contentType   = []byte("Content-Type: ")
	contentLength = []byte("Content-Length: ")
	contentRange  = []byte("Content-Range: bytes ")
	location      = []byte("Location: ")
)

// CGIRunner executes a script and streams its output into w
type CGIRunner interface {
	Run(w io.Writer, script string, env cgi.Env) (int64, error)
}

type Transmitter struct {
	cgi  CGIRunner
	now  func() time.Time
	buff []byte
}

func New(runner CGIRunner) *Transmitter {
	return &Transmitter{
		cgi:  runner,
		now:  time.Now,
		buff: make([]byte, 0, 512),
	}
}

// Send writes the response head and, if required, the body. The body is either
// content_length bytes of the file at path starting at the range's begin, or the output
// of the CGI script at path. The returned number of bytes written is valid even
// in case of error; nothing is rolled back
func (t *Transmitter) Send(w io.Writer, path string, response http.Response, env cgi.Env) (n int64, err error) {
	head := t.head(response)

	written, err := w.Write(head)
	n += int64(written)
	if err != nil {
		return n, err
	}

	if response.Method != http.MethodGET || !response.HasContent() {
		return n, nil
	}

	var body int64
	if response.IsCGI {
		body, err = t.cgi.Run(w, path, env)
	} else {
		body, err = sendFile(w, path, response.ContentRange.Begin, response.ContentLength)
	}

	return n + body, err
}

func (t *Transmitter) head(response http.Response) []byte {
	b := append(t.buff[:0], protocol...)
	b = strconv.AppendInt(b, int64(response.Status.Code()), 10)
	b = append(b, ' ')
	b = append(b, response.Status.Text()...)
	b = append(b, crlf...)
	b = append(b, dateKey...)
	b = http.AppendDate(b, t.now())
	b = append(b, crlf...)
	b = append(b, serverField...)

	switch response.Status {
	case http.StatusOK, http.StatusPartialContent, http.StatusNotModified:
		b = append(b, lastModKey...)
		b = http.AppendDate(b, response.LastModified)
		b = append(b, crlf...)
		b = append(b, acceptRanges...)
		b = append(b, connection...)

		if !response.IsCGI && response.Status != http.StatusNotModified {
			b = append(b, contentType...)
			b = append(b, response.ContentType...)
			b = append(b, crlf...)
			b = append(b, contentLength...)
			b = strconv.AppendInt(b, response.ContentLength, 10)
			b = append(b, crlf...)
			b = append(b, contentRange...)
			b = strconv.AppendInt(b, response.ContentRange.Begin, 10)
			b = append(b, '-')
			b = strconv.AppendInt(b, response.ContentRange.Total-1, 10)
			b = append(b, '/')
			b = strconv.AppendInt(b, response.ContentRange.Total, 10)
			b = append(b, crlf...)
		}
	case http.StatusMovedPermanently:
		b = append(b, location...)
		b = append(b, response.ContentLocation...)
		b = append(b, '/')
		b = append(b, crlf...)
	}

	// CGI scripts may complete the head with their own fields, so the terminating
	// empty line is theirs
	if !(response.IsCGI && response.HasContent() && response.Method == http.MethodGET) {
		b = append(b, crlf...)
	}

	t.buff = b

	return b
}

// sendFile copies exactly length bytes starting at offset. If w is a TCP connection
// (or wraps one implementing io.ReaderFrom), the copy goes through sendfile(2)
func sendFile(w io.Writer, path string, offset, length int64) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}

	defer file.Close()

	if _, err = file.Seek(offset, io.SeekStart); err != nil {
		return 0, err
	}

	n, err := io.CopyN(w, file, length)
	if err == io.EOF {
		// the file shrank since it was resolved
		return n, fmt.Errorf("file truncated: sent %d of %d bytes", n, length)
	}

	return n, err
}
