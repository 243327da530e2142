package http

import (
	"errors"
	"fmt"
	"github.com/wolframreinke/distsys-pe/internal/cgi"
	web "github.com/wolframreinke/distsys-pe/internal/http"
	"github.com/wolframreinke/distsys-pe/internal/logger"
	"github.com/wolframreinke/distsys-pe/internal/parse"
	"github.com/wolframreinke/distsys-pe/internal/resolve"
	"github.com/wolframreinke/distsys-pe/internal/scan"
	"github.com/wolframreinke/distsys-pe/internal/scan/http1"
	"github.com/wolframreinke/distsys-pe/internal/server/tcp"
	"github.com/wolframreinke/distsys-pe/internal/transmit"
	"io"
	"strings"
)

// Server serves exactly one request on a single connection, and closes it afterwards
type Server struct {
	client      tcp.Client
	scanner     scan.Scanner
	resolver    *resolve.Resolver
	transmitter *transmit.Transmitter
	log         *logger.Logger
	root        string
	state       connState

	host        string
	requestLine string
	request     web.Request
	status      web.Status
	filename    string
	response    web.Response
	sent        int64
}

func New(
	client tcp.Client, scanner scan.Scanner, resolver *resolve.Resolver,
	transmitter *transmit.Transmitter, log *logger.Logger, root string,
) *Server {
	return &Server{
		client:      client,
		scanner:     scanner,
		resolver:    resolver,
		transmitter: transmitter,
		log:         log,
		root:        root,
	}
}

func (s *Server) Serve() {
	defer func() {
		if r := recover(); r != nil {
			s.log.Printf("error: connection from %s failed in state %s: %v", s.host, s.state, r)
			_ = transmit.SendFallbackError(s.client)
		}

		_ = s.client.Close()
		s.scanner.Release()
	}()

	s.state = eAccepted

	for {
		switch s.state {
		case eAccepted:
			s.host = tcp.PeerHost(s.client.Remote())
			s.log.Debugf("connection from %s", s.host)
			s.state = eReading
		case eReading:
			s.state = s.read()
		case eParsed:
			if !s.status.IsError() {
				s.filename = resolve.MapPath(s.root, s.request.URI)
			}

			s.response = s.resolver.Resolve(s.filename, s.request, s.status)
			s.state = eResolved
		case eResolved:
			s.state = s.respond()
		case eResponded:
			s.log.LogRequest(s.host, s.response.Date, s.requestLine, s.response.Status.Code(), s.sent)
			s.state = eLogged
		case eLogged:
			s.state = eTerminated
		case eTerminated:
			return
		default:
			panic(fmt.Errorf("BUG: unknown connection state: %d", s.state))
		}
	}
}

// read fills the scanner with the request head and parses it. Only a failure of the
// connection itself stops the connection here, everything else is answered
func (s *Server) read() connState {
	err := s.readHead()
	switch {
	case err == nil:
	case errors.Is(err, http1.ErrNoRequestLine):
		s.log.Debugf("connection from %s closed without a request", s.host)
		return eTerminated
	case errors.Is(err, errHead):
		s.log.Debugf("bad request head from %s: %s", s.host, err)
		s.requestLine = string(s.scanner.Report().RequestLine)
		s.status = parse.StatusOf(err)
		return eParsed
	default:
		s.log.Printf("error: reading request from %s: %s", s.host, err)
		_ = transmit.SendFallbackError(s.client)
		return eTerminated
	}

	report := s.scanner.Report()
	s.requestLine = string(report.RequestLine)
	s.request, s.status = parse.Parse(report)

	return eParsed
}

// errHead marks errors caused by the content of the head rather than by the connection
var errHead = errors.New("request head")

func (s *Server) readHead() error {
	for {
		data, err := s.client.Read()
		if len(data) > 0 {
			done, rest, scanErr := s.scanner.Scan(data)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", errHead, scanErr)
			}

			if done {
				s.client.Unread(rest)
				return nil
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			if err = s.scanner.Finish(); err != nil && !errors.Is(err, http1.ErrNoRequestLine) {
				return fmt.Errorf("%w: %w", errHead, err)
			}

			return err
		default:
			return err
		}
	}
}

func (s *Server) respond() connState {
	env := cgi.Env{
		Method:     s.request.Method.String(),
		ScriptName: s.request.URI,
		RemoteAddr: s.host,
	}

	if q := strings.IndexByte(env.ScriptName, '?'); q != -1 {
		env.ScriptName, env.Query = env.ScriptName[:q], env.ScriptName[q+1:]
	}

	var err error
	s.sent, err = s.transmitter.Send(s.client, s.filename, s.response, env)

	switch {
	case err == nil:
		return eResponded
	case errors.Is(err, cgi.ErrStart), errors.Is(err, cgi.ErrPipe), errors.Is(err, cgi.ErrTimeout):
		// the head is already sent, so the client can't be told anymore
		s.log.Printf("error: cgi %s for %s: %s", s.filename, s.host, err)
		s.response.Status = web.StatusInternalServerError
		return eResponded
	default:
		s.log.Printf("error: sending response to %s: %s", s.host, err)
		return eTerminated
	}
}
