package image

import "sync"

// Pool is a thread-safe pool for reusing Buffer instances.
//
// Pool groups buffers by their dimensions and format. Intermediate images
// built for field-driven operators have the destination's size, so
// repeated composites onto one canvas reuse the same allocation.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Buffer
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of buffers with the same size and format.
type poolKey struct {
	width  int
	height int
	format Format
}

// NewPool creates a pool retaining at most maxPerBucket buffers per
// size and format. Zero means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Buffer),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer of the given size and format, reusing a
// pooled one when available.
func (p *Pool) Get(width, height int, format Format) (*Buffer, error) {
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		buf.Clear()
		return buf, nil
	}
	p.mu.Unlock()

	return NewBuffer(width, height, format)
}

// Clone returns a pooled copy of src.
func (p *Pool) Clone(src *Buffer) (*Buffer, error) {
	buf, err := p.Get(src.width, src.height, src.format)
	if err != nil {
		return nil, err
	}
	if err := buf.CopyFrom(src); err != nil {
		p.Put(buf)
		return nil, err
	}
	return buf, nil
}

// Put returns a buffer to the pool. Nil buffers and buffers beyond the
// bucket limit are discarded.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}
	key := poolKey{
		width:  buf.width,
		height: buf.height,
		format: buf.format,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// defaultPool is the package-level pool for convenient usage.
var defaultPool = NewPool(4)

// GetFromDefault retrieves a buffer from the default pool.
func GetFromDefault(width, height int, format Format) (*Buffer, error) {
	return defaultPool.Get(width, height, format)
}

// CloneFromDefault copies src into a buffer from the default pool.
func CloneFromDefault(src *Buffer) (*Buffer, error) {
	return defaultPool.Clone(src)
}

// PutToDefault returns a buffer to the default pool.
func PutToDefault(buf *Buffer) {
	defaultPool.Put(buf)
}
