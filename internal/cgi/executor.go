package cgi

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

const defaultBufferSize = 4096

// Env describes the request that triggered the script. It is exposed to the
// script as RFC 3875 meta-variables, on top of the inherited environment
type Env struct {
	Method     string
	ScriptName string
	Query      string
	RemoteAddr string
}

func (e Env) variables(software string) []string {
	return []string{
		"GATEWAY_INTERFACE=CGI/1.1",
		"SERVER_PROTOCOL=HTTP/1.1",
		"SERVER_SOFTWARE=" + software,
		"REQUEST_METHOD=" + e.Method,
		"SCRIPT_NAME=" + e.ScriptName,
		"QUERY_STRING=" + e.Query,
		"REMOTE_ADDR=" + e.RemoteAddr,
	}
}

// Exit describes a reaped script
type Exit struct {
	Pid int
	Err error
}

type Executor struct {
	// Software is exposed as SERVER_SOFTWARE
	Software string
	// ReadTimeout bounds the wait for every single read from the script. Zero means
	// waiting as long as the script runs
	ReadTimeout time.Duration
	// OnExit is called from the reaping goroutine. May be nil
	OnExit     func(Exit)
	bufferSize int
}

func NewExecutor(software string, readTimeout time.Duration, onExit func(Exit)) *Executor {
	return &Executor{
		Software:    software,
		ReadTimeout: readTimeout,
		OnExit:      onExit,
		bufferSize:  defaultBufferSize,
	}
}

// Run executes the script with both stdout and stderr redirected into a pipe and
// copies everything coming out of it into w, until the pipe is closed by the script.
// The number of bytes written into w is returned even in case of error
func (e *Executor) Run(w io.Writer, script string, env Env) (n int64, err error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return 0, fmt.Errorf("%w: pipe: %s", ErrStart, err)
	}

	defer pr.Close()

	cmd := exec.Command(script)
	cmd.Env = append(os.Environ(), env.variables(e.Software)...)
	cmd.Stdout = pw
	cmd.Stderr = pw

	err = cmd.Start()
	// the child has its own copy of the write end now. Ours must be closed, otherwise
	// the pipe never reports the end of stream
	_ = pw.Close()
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrStart, err)
	}

	go e.reap(cmd)

	n, err = e.copy(w, pr)
	if err != nil {
		// nobody is going to read the rest of the output
		_ = cmd.Process.Kill()
	}

	return n, err
}

func (e *Executor) copy(w io.Writer, pr *os.File) (n int64, err error) {
	size := e.bufferSize
	if size <= 0 {
		size = defaultBufferSize
	}

	buff := make([]byte, size)

	for {
		if e.ReadTimeout > 0 {
			if err = pr.SetReadDeadline(time.Now().Add(e.ReadTimeout)); err != nil {
				return n, fmt.Errorf("%w: %s", ErrPipe, err)
			}
		}

		read, rerr := pr.Read(buff)
		if read > 0 {
			written, werr := w.Write(buff[:read])
			n += int64(written)
			if werr != nil {
				return n, fmt.Errorf("%w: %s", ErrWrite, werr)
			}
		}

		switch {
		case rerr == nil:
		case errors.Is(rerr, io.EOF):
			return n, nil
		case errors.Is(rerr, syscall.EINTR):
		case errors.Is(rerr, os.ErrDeadlineExceeded):
			return n, fmt.Errorf("%w: no output for %s", ErrTimeout, e.ReadTimeout)
		default:
			return n, fmt.Errorf("%w: %s", ErrPipe, rerr)
		}
	}
}

func (e *Executor) reap(cmd *exec.Cmd) {
	err := cmd.Wait()
	if e.OnExit != nil {
		e.OnExit(Exit{
			Pid: cmd.Process.Pid,
			Err: err,
		})
	}
}
