package tcp

import (
	"errors"
	"io"
	"net"
	"os"
	"time"
)

type Client interface {
	io.Writer
	io.ReaderFrom
	Read() ([]byte, error)
	Unread([]byte)
	Remote() net.Addr
	Close() error
}

// sendChunk limits a single sendfile(2) call
const sendChunk = 1 << 20

type client struct {
	conn                        net.Conn
	readDeadline, writeDeadline time.Duration
	buff                        []byte
	unread                      []byte
}

// NewClient wraps the connection. Every single read or write must complete in the
// given timeout, zero means no timeout at all
func NewClient(conn net.Conn, rDeadline, wDeadline time.Duration, buff []byte) Client {
	return &client{
		conn:          conn,
		readDeadline:  rDeadline,
		writeDeadline: wDeadline,
		buff:          buff,
	}
}

// Seconds converts the timeout as it is configured into a deadline
func Seconds(timeout uint) time.Duration {
	return time.Duration(timeout) * time.Second
}

func (c *client) Write(data []byte) (int, error) {
	if err := c.setWriteDeadline(); err != nil {
		return 0, err
	}

	n, err := c.conn.Write(data)

	return n, wrapTimeout(err)
}

// ReadFrom lets io.Copy reach the connection's own ReadFrom, which is sendfile(2) for
// files on TCP connections. Files go out in chunks of at most sendChunk bytes, each one
// under a fresh write deadline, so the deadline bounds a stall and not the whole body.
// Any other reader is copied through Write, refreshing the deadline on every write
func (c *client) ReadFrom(r io.Reader) (n int64, err error) {
	rf, isRF := c.conn.(io.ReaderFrom)
	lr, isLimited := r.(*io.LimitedReader)
	if !isRF || !isLimited {
		return io.Copy(struct{ io.Writer }{c}, r)
	}

	file, isFile := lr.R.(*os.File)
	if !isFile {
		return io.Copy(struct{ io.Writer }{c}, r)
	}

	for lr.N > 0 {
		if err = c.setWriteDeadline(); err != nil {
			return n, err
		}

		var sent int64
		want := min(lr.N, sendChunk)
		sent, err = rf.ReadFrom(&io.LimitedReader{R: file, N: want})
		n += sent
		lr.N -= sent
		if err != nil {
			return n, wrapTimeout(err)
		}

		if sent < want {
			// end of file
			break
		}
	}

	return n, nil
}

func (c *client) Read() ([]byte, error) {
	if len(c.unread) > 0 {
		data := c.unread
		c.unread = nil

		return data, nil
	}

	if c.readDeadline > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readDeadline)); err != nil {
			return nil, err
		}
	}

	n, err := c.conn.Read(c.buff)

	return c.buff[:n], wrapTimeout(err)
}

func (c *client) Unread(data []byte) {
	c.unread = data
}

func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close shuts the writing side down first, so the peer receives everything written
// before the connection is gone
func (c *client) Close() error {
	if tcpConn, ok := c.conn.(*net.TCPConn); ok {
		_ = tcpConn.CloseWrite()
	}

	return c.conn.Close()
}

func (c *client) setWriteDeadline() error {
	if c.writeDeadline <= 0 {
		return nil
	}

	return c.conn.SetWriteDeadline(time.Now().Add(c.writeDeadline))
}

func wrapTimeout(err error) error {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return ErrTimeout
	}

	return err
}
