package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"
)

// accessTimeFormat is the timestamp layout of the common log format
const accessTimeFormat = "02/Jan/2006:15:04:05 -0700"

// Logger is built once at startup and shared by every connection. The mutex
// serializes lines of concurrently running connections, so they never interleave
type Logger struct {
	mu      sync.Mutex
	access  io.Writer
	diag    io.Writer
	verbose bool
	prefix  []byte
	buff    []byte
}

// New returns a logger writing access entries into access and diagnostics into diag.
// Debug messages are dropped unless verbose is set
func New(access, diag io.Writer, verbose bool) *Logger {
	return &Logger{
		access:  access,
		diag:    diag,
		verbose: verbose,
		prefix:  []byte("[" + strconv.Itoa(os.Getpid()) + "] "),
		buff:    make([]byte, 0, 256),
	}
}

func (l *Logger) Verbose() bool {
	return l.verbose
}

// LogRequest writes an entry in the common log format:
//
//	<host> - - [<date>] "<request line>" <status> <bytes sent>
func (l *Logger) LogRequest(host string, date time.Time, requestLine string, status int, bytesSent int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := append(l.buff[:0], host...)
	b = append(b, " - - ["...)
	b = date.UTC().AppendFormat(b, accessTimeFormat)
	b = append(b, "] \""...)
	b = append(b, requestLine...)
	b = append(b, "\" "...)
	b = strconv.AppendInt(b, int64(status), 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, bytesSent, 10)
	b = append(b, '\n')
	l.buff = b

	_, _ = l.access.Write(b)
}

// Printf writes a diagnostic line, prefixed by the process id
func (l *Logger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := append(l.buff[:0], l.prefix...)
	b = fmt.Appendf(b, format, args...)
	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	l.buff = b

	_, _ = l.diag.Write(b)
}

// Debugf is Printf, but only if the logger is verbose
func (l *Logger) Debugf(format string, args ...any) {
	if !l.verbose {
		return
	}

	l.Printf(format, args...)
}
