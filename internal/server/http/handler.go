package http

import (
	"github.com/indigo-web/utils/arena"
	"github.com/wolframreinke/distsys-pe/internal/cgi"
	"github.com/wolframreinke/distsys-pe/internal/logger"
	"github.com/wolframreinke/distsys-pe/internal/resolve"
	"github.com/wolframreinke/distsys-pe/internal/scan/http1"
	"github.com/wolframreinke/distsys-pe/internal/server/tcp"
	"github.com/wolframreinke/distsys-pe/internal/transmit"
	"net"
	"time"
)

type Options struct {
	Root          string
	ReadDeadline  time.Duration
	WriteDeadline time.Duration
	// CGIReadTimeout bounds every read from a CGI script. Zero disables it
	CGIReadTimeout time.Duration
	ReadBufferSize int
}

const defaultReadBufferSize = 4096

// OnConn returns the function serving every accepted connection. Connections share
// nothing but the logger and the stateless resolver and executor
func OnConn(opts Options, log *logger.Logger) func(conn net.Conn) {
	if opts.ReadBufferSize <= 0 {
		opts.ReadBufferSize = defaultReadBufferSize
	}

	resolver := resolve.New()
	executor := cgi.NewExecutor(transmit.ServerName, opts.CGIReadTimeout, func(exit cgi.Exit) {
		log.Debugf("cgi script finished, pid %d: %v", exit.Pid, exit.Err)
	})

	return func(conn net.Conn) {
		client := tcp.NewClient(conn, opts.ReadDeadline, opts.WriteDeadline, make([]byte, opts.ReadBufferSize))
		buffer := arena.NewArena[byte](http1.DefaultInitialSpace, http1.DefaultMaxSpace)
		scanner := http1.NewScanner(buffer)
		server := New(client, scanner, resolver, transmit.New(executor), log, opts.Root)
		server.Serve()
	}
}
