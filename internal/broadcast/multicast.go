package broadcast

import (
	"fmt"
	"log/slog"
	"net"
)

// MulticastPublisher publishes share messages as UDP datagrams to a
// multicast group.
type MulticastPublisher struct {
	conn   *net.UDPConn
	group  string
	logger *slog.Logger
}

// Ensure MulticastPublisher implements Publisher
var _ Publisher = (*MulticastPublisher)(nil)

// NewMulticastPublisher opens a UDP socket targeting the multicast group,
// e.g. "224.0.0.1:4446".
func NewMulticastPublisher(group string, logger *slog.Logger) (*MulticastPublisher, error) {
	addr, err := net.ResolveUDPAddr("udp", group)
	if err != nil {
		return nil, fmt.Errorf("resolving multicast group: %w", err)
	}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("opening multicast socket: %w", err)
	}

	return &MulticastPublisher{
		conn:   conn,
		group:  group,
		logger: logger.With(slog.String("component", "multicast")),
	}, nil
}

// Publish sends the message as a single datagram. Errors are logged and
// swallowed; delivery is at most once with no acknowledgment.
func (p *MulticastPublisher) Publish(message string) {
	if _, err := p.conn.Write([]byte(message)); err != nil {
		p.logger.Warn("publish failed",
			slog.String("group", p.group),
			slog.String("error", err.Error()))
		return
	}
	p.logger.Info("share published", slog.String("message", message))
}

// Close closes the multicast socket
func (p *MulticastPublisher) Close() error {
	return p.conn.Close()
}
