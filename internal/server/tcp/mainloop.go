package tcp

import (
	"context"
	"errors"
	"github.com/wolframreinke/distsys-pe/internal/logger"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

const (
	minBackoff = 5 * time.Millisecond
	maxBackoff = time.Second
)

// Run accepts connections until ctx is done, serving each one on its own goroutine.
// Connections in flight are never interrupted: Run waits for them before returning.
// Every finished connection is reported back over a channel to a reaper, so the
// accept loop itself never blocks on them
func Run(ctx context.Context, sock net.Listener, log *logger.Logger, onConn func(conn net.Conn)) error {
	var active atomic.Int64
	wg := new(sync.WaitGroup)
	finished := make(chan net.Addr, 64)
	reaped := make(chan struct{})

	go func() {
		for remote := range finished {
			log.Debugf("connection from %s finished, %d active", remote, active.Add(-1))
		}

		close(reaped)
	}()

	stopWatch := context.AfterFunc(ctx, func() {
		// unblocks Accept
		_ = sock.Close()
	})
	defer stopWatch()

	defer func() {
		wg.Wait()
		close(finished)
		<-reaped
	}()

	var backoff time.Duration

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, err := sock.Accept()
		if err != nil {
			if ctx.Err() != nil {
				continue
			}

			if errors.Is(err, net.ErrClosed) {
				return err
			}

			// e.g. out of file descriptors
			backoff = min(max(2*backoff, minBackoff), maxBackoff)
			log.Printf("error accepting a connection: %s; retrying in %s", err, backoff)

			select {
			case <-ctx.Done():
			case <-time.After(backoff):
			}

			continue
		}

		backoff = 0

		active.Add(1)
		wg.Add(1)
		go func() {
			defer wg.Done()

			onConn(conn)
			finished <- conn.RemoteAddr()
		}()
	}
}
