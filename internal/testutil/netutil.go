package testutil

import (
	"net"
	"sync"
	"testing"
	"time"
)

// FakeAddr implements net.Addr for tests.
type FakeAddr struct {
	NetworkName string
	AddrString  string
}

func (f FakeAddr) Network() string { return f.NetworkName }
func (f FakeAddr) String() string  { return f.AddrString }

// UDPAddr creates a FakeAddr for a UDP endpoint.
func UDPAddr(addr string) FakeAddr {
	return FakeAddr{NetworkName: "udp", AddrString: addr}
}

// Datagram is one packet seen by a FakePacketConn.
type Datagram struct {
	Data []byte
	Addr net.Addr
}

// FakePacketConn is an in-memory net.PacketConn. Tests feed inbound
// datagrams with Deliver and inspect what the code under test wrote.
// Deadlines are accepted and ignored.
type FakePacketConn struct {
	local net.Addr
	inbox chan Datagram

	mu   sync.Mutex
	sent []Datagram

	closeOnce sync.Once
	closed    chan struct{}
}

var _ net.PacketConn = (*FakePacketConn)(nil)

// NewFakePacketConn creates a conn bound to the fake address local.
func NewFakePacketConn(local string) *FakePacketConn {
	return &FakePacketConn{
		local:  UDPAddr(local),
		inbox:  make(chan Datagram, 256),
		closed: make(chan struct{}),
	}
}

// Deliver queues a datagram from addr for the next ReadFrom.
func (c *FakePacketConn) Deliver(data []byte, from net.Addr) {
	buf := append([]byte(nil), data...)
	select {
	case c.inbox <- Datagram{Data: buf, Addr: from}:
	case <-c.closed:
	}
}

// ReadFrom blocks until a datagram is delivered or the conn is closed.
func (c *FakePacketConn) ReadFrom(p []byte) (int, net.Addr, error) {
	select {
	case d := <-c.inbox:
		return copy(p, d.Data), d.Addr, nil
	case <-c.closed:
		return 0, nil, net.ErrClosed
	}
}

// WriteTo records the datagram.
func (c *FakePacketConn) WriteTo(p []byte, addr net.Addr) (int, error) {
	select {
	case <-c.closed:
		return 0, net.ErrClosed
	default:
	}

	c.mu.Lock()
	c.sent = append(c.sent, Datagram{Data: append([]byte(nil), p...), Addr: addr})
	c.mu.Unlock()
	return len(p), nil
}

// Sent returns a snapshot of every written datagram.
func (c *FakePacketConn) Sent() []Datagram {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Datagram(nil), c.sent...)
}

// SentTo returns the datagrams written to addr.
func (c *FakePacketConn) SentTo(addr net.Addr) []Datagram {
	var out []Datagram
	for _, d := range c.Sent() {
		if d.Addr != nil && d.Addr.String() == addr.String() {
			out = append(out, d)
		}
	}
	return out
}

// Reset forgets the recorded datagrams.
func (c *FakePacketConn) Reset() {
	c.mu.Lock()
	c.sent = nil
	c.mu.Unlock()
}

// WaitSent waits until at least n datagrams were written.
func (c *FakePacketConn) WaitSent(t testing.TB, n int, timeout time.Duration) []Datagram {
	t.Helper()
	Eventually(t, timeout, func() bool { return len(c.Sent()) >= n }, "waiting for outbound datagrams")
	return c.Sent()
}

// Closed reports whether Close was called.
func (c *FakePacketConn) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *FakePacketConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *FakePacketConn) LocalAddr() net.Addr              { return c.local }
func (c *FakePacketConn) SetDeadline(time.Time) error      { return nil }
func (c *FakePacketConn) SetReadDeadline(time.Time) error  { return nil }
func (c *FakePacketConn) SetWriteDeadline(time.Time) error { return nil }
