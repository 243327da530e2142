package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/wolframreinke/distsys-pe/internal/config"
	"github.com/wolframreinke/distsys-pe/internal/logger"
	"github.com/wolframreinke/distsys-pe/internal/server/http"
	"github.com/wolframreinke/distsys-pe/internal/server/tcp"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

func main() {
	os.Exit(run())
}

func run() int {
	program := filepath.Base(os.Args[0])
	opts, err := config.Parse(program, os.Args[1:], os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		return 0
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	if opts.LogsToStdout() {
		fmt.Println("Note: logging is redirected to stdout.")
	}

	access, closeLog, err := opts.OpenLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	defer closeLog()

	if err = opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	log := logger.New(access, os.Stderr, opts.Verbose)
	fmt.Printf("[%d] Starting server '%s'...\n", os.Getpid(), opts.Program)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sock, err := tcp.Listen(ctx, opts.Port, config.Backlog)
	if err != nil {
		log.Printf("error: listen: %s", err)
		return 1
	}

	log.Debugf("listening on %s, serving %s", sock.Addr(), opts.Root)

	onConn := http.OnConn(http.Options{
		Root:           opts.Root,
		ReadDeadline:   tcp.Seconds(opts.Timeout),
		WriteDeadline:  tcp.Seconds(opts.Timeout),
		CGIReadTimeout: tcp.Seconds(opts.CGITimeout),
	}, log)

	err = tcp.Run(ctx, sock, log, onConn)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, net.ErrClosed) {
		log.Printf("error: tcp: %s", err)
		return 1
	}

	fmt.Printf("[%d] Good Bye...\n", os.Getpid())

	return 0
}
