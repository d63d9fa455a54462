package gameserver

import "sync"

// BytePool is a pool of datagram read buffers of one fixed size.
type BytePool struct {
	size int
	pool sync.Pool
}

// NewBytePool creates a pool handing out buffers of size bytes.
func NewBytePool(size int) *BytePool {
	p := &BytePool{size: size}
	p.pool.New = func() any {
		return make([]byte, size)
	}
	return p
}

// Get returns a buffer of the pool's size.
func (p *BytePool) Get() []byte {
	return p.pool.Get().([]byte)[:p.size]
}

// Put returns the buffer to the pool. Buffers of a foreign size are dropped.
func (p *BytePool) Put(b []byte) {
	if cap(b) < p.size {
		return
	}
	p.pool.Put(b[:p.size])
}
