package transmit

import (
	"github.com/wolframreinke/distsys-pe/internal/http"
	"io"
	"time"
)

var (
	fallbackHead = []byte("HTTP/1.1 500 Internal Server Error\r\nDate: ")
	fallbackTail = []byte("\r\nServer: " + ServerName + "\r\n\r\n")
)

// SendFallbackError is the last resort if a proper response cannot be built. It
// doesn't depend on anything but the current time
func SendFallbackError(w io.Writer) error {
	var buff [128]byte

	b := append(buff[:0], fallbackHead...)
	b = http.AppendDate(b, time.Now())
	b = append(b, fallbackTail...)
	_, err := w.Write(b)

	return err
}
