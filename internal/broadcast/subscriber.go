package broadcast

import (
	"fmt"
	"net"
	"strings"
	"sync"
)

const maxDatagramSize = 1024

// Subscriber joins a multicast group and buffers every received share
// message for on-demand display. The receive path never blocks on display.
type Subscriber struct {
	conn *net.UDPConn

	mu       sync.Mutex
	messages []string
}

// NewSubscriber joins the multicast group, e.g. "224.0.0.1:4446".
func NewSubscriber(group string) (*Subscriber, error) {
	addr, err := net.ResolveUDPAddr("udp", group)
	if err != nil {
		return nil, fmt.Errorf("resolving multicast group: %w", err)
	}

	conn, err := net.ListenMulticastUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("joining multicast group: %w", err)
	}
	_ = conn.SetReadBuffer(maxDatagramSize)

	return &Subscriber{conn: conn}, nil
}

// Run receives datagrams until the socket is closed. Call from its own
// goroutine.
func (s *Subscriber) Run() {
	buf := make([]byte, maxDatagramSize)
	for {
		n, _, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		msg := strings.TrimRight(string(buf[:n]), "\x00\n")

		s.mu.Lock()
		s.messages = append(s.messages, msg)
		s.mu.Unlock()
	}
}

// Messages returns a snapshot of all buffered messages in arrival order.
func (s *Subscriber) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}

// Close leaves the multicast group and stops Run.
func (s *Subscriber) Close() error {
	return s.conn.Close()
}
