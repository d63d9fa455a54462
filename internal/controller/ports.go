package controller

import (
	"fmt"
	"sync"
)

// EndpointProvider hands out session ports.
type EndpointProvider interface {
	Acquire() (int, error)
	Release(port int)
}

// PortPool is an EndpointProvider over a contiguous port range. The
// lowest free port is handed out first.
type PortPool struct {
	mu    sync.Mutex
	start int
	inUse []bool
}

var _ EndpointProvider = (*PortPool)(nil)

// NewPortPool creates a pool of size ports starting at start.
func NewPortPool(start, size int) *PortPool {
	return &PortPool{start: start, inUse: make([]bool, max(size, 0))}
}

// Acquire reserves a free port.
func (p *PortPool) Acquire() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, used := range p.inUse {
		if !used {
			p.inUse[i] = true
			return p.start + i, nil
		}
	}
	return 0, fmt.Errorf("%w: all %d ports in use", ErrNoFreePorts, len(p.inUse))
}

// Release returns port to the pool. Foreign ports are ignored.
func (p *PortPool) Release(port int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i := port - p.start; i >= 0 && i < len(p.inUse) {
		p.inUse[i] = false
	}
}

// Available returns the number of free ports.
func (p *PortPool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, used := range p.inUse {
		if !used {
			n++
		}
	}
	return n
}
