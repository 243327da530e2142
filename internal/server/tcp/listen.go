package tcp

import (
	"context"
	"net"
	"strconv"
)

const network = "tcp"

// Listen binds all interfaces on the port. Go leaves the backlog to the kernel
// (somaxconn), so the backlog is only checked to be sane
func Listen(ctx context.Context, port uint16, backlog int) (net.Listener, error) {
	if backlog <= 0 {
		return nil, ErrBadBacklog
	}

	lc := net.ListenConfig{}

	return lc.Listen(ctx, network, net.JoinHostPort("", strconv.Itoa(int(port))))
}

// PeerHost returns the IP address of the peer, without the port
func PeerHost(addr net.Addr) string {
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return tcpAddr.IP.String()
	}

	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}

	return host
}
