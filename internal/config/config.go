package config

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
)

const (
	DefaultTimeout = 120
	// Backlog of the listening socket
	Backlog = 5
	stdout  = "-"
)

// Options are the program options. Every option has a short and a long flag, both
// accepted with either one or two dashes
type Options struct {
	Program string
	Port    uint16
	Root    string
	LogFile string
	Verbose bool
	// Timeout is applied to each single read or write of a connection, in seconds
	Timeout uint
	// CGITimeout is applied to each single read from a CGI script, in seconds
	CGITimeout uint
}

// Parse parses the arguments, not including the program name. Usage is printed into
// output on failure. Both the port and the root directory are mandatory; the port
// may be given by its service name
func Parse(program string, args []string, output io.Writer) (Options, error) {
	opts := Options{
		Program:    program,
		Timeout:    DefaultTimeout,
		CGITimeout: DefaultTimeout,
	}

	var port string
	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		usage(output, program)
	}

	fs.StringVar(&opts.LogFile, "f", stdout, "")
	fs.StringVar(&opts.LogFile, "file", stdout, "")
	fs.StringVar(&port, "p", "", "")
	fs.StringVar(&port, "port", "", "")
	fs.StringVar(&opts.Root, "d", "", "")
	fs.StringVar(&opts.Root, "dir", "", "")
	fs.BoolVar(&opts.Verbose, "v", false, "")
	fs.BoolVar(&opts.Verbose, "verbose", false, "")
	fs.UintVar(&opts.Timeout, "t", DefaultTimeout, "")
	fs.UintVar(&opts.Timeout, "timeout", DefaultTimeout, "")
	fs.UintVar(&opts.CGITimeout, "cgi-timeout", DefaultTimeout, "")

	// trailing arguments are silently ignored
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch {
	case port == "":
		usage(output, program)
		return opts, ErrNoPort
	case opts.Root == "":
		usage(output, program)
		return opts, ErrNoRoot
	case opts.Timeout == 0:
		return opts, ErrBadTimeout
	}

	var err error
	if opts.Port, err = lookupPort(port); err != nil {
		return opts, err
	}

	return opts, nil
}

func usage(w io.Writer, program string) {
	_, _ = fmt.Fprintf(w, "Usage: %s [OPTION]...\n\n", program)
	_, _ = io.WriteString(w,
		"  -f, --file=FILE      Write log output to FILE; if not specified, log\n"+
			"                       messages are written to stdout.\n"+
			"  -p, --port=PORT      Accept clients on port PORT.\n"+
			"  -d, --dir=DIR        Use DIR as root directory for web contents.\n"+
			"  -t, --timeout=SECS   Give up on a client after SECS of silence.\n"+
			"      --cgi-timeout=SECS\n"+
			"                       Give up on a CGI script after SECS of silence.\n"+
			"  -v, --verbose        More detailed output.\n",
	)
}

func lookupPort(service string) (uint16, error) {
	if n, err := strconv.ParseUint(service, 10, 16); err == nil {
		return uint16(n), nil
	}

	port, err := net.LookupPort("tcp", service)
	if err != nil || port <= 0 || port > 0xffff {
		return 0, fmt.Errorf("%w: %q", ErrBadPort, service)
	}

	return uint16(port), nil
}

// Validate checks the root directory exists and is accessible by anyone
func (o Options) Validate() error {
	info, err := os.Stat(o.Root)
	if err != nil {
		return fmt.Errorf("cannot access root dir: %w", err)
	}

	if !info.IsDir() || info.Mode().Perm()&0o005 == 0 {
		return fmt.Errorf("%w: %s", ErrBadRoot, o.Root)
	}

	return nil
}

// OpenLog opens the access log file, truncating it. "-" stands for stdout. The
// returned function closes the file, if any
func (o Options) OpenLog() (io.Writer, func() error, error) {
	if o.LogFile == "" || o.LogFile == stdout {
		return os.Stdout, func() error { return nil }, nil
	}

	file, err := os.OpenFile(o.LogFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open logfile: %w", err)
	}

	return file, file.Close, nil
}

// LogsToStdout reports whether access entries end up on stdout
func (o Options) LogsToStdout() bool {
	return o.LogFile == "" || o.LogFile == stdout
}
