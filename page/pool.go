package page

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gabuzi/cottontaildb/cterr"
	"github.com/gabuzi/cottontaildb/internal/resource"
)

// Mode is the access mode a caller borrows a page under.
type Mode byte

const (
	ModeRead Mode = iota
	ModeWrite
)

// frame is one resident page plus its pin count and temperature tracking.
type frame struct {
	page    *Page
	pins    int
	touches int // incremented on every Acquire, used to pick an eviction candidate
}

// BufferPool manages a bounded set of resident Pages backed by a single
// file, admitting page reads through a resource.Controller the way the
// teacher's buffer/cache layer admits reads through its own controller
// (resource/controller.go), and evicting the coldest frame (fewest
// touches) when full — a deliberately simple policy the spec leaves
// unspecified (§9 open question).
type BufferPool struct {
	mu       sync.Mutex
	file     *os.File
	pageSize int
	capacity int
	frames   map[int64]*frame
	admit    *resource.Controller
	compress CompressionType
}

// Open opens (creating if necessary) the file at path as a BufferPool's
// backing store.
func Open(path string, pageSize, capacityPages int, admit *resource.Controller, compress CompressionType) (*BufferPool, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, &cterr.IoError{Op: "open", Err: err}
	}
	if admit == nil {
		admit = resource.New(int64(capacityPages), 0)
	}
	return &BufferPool{
		file:     f,
		pageSize: pageSize,
		capacity: capacityPages,
		frames:   make(map[int64]*frame),
		admit:    admit,
		compress: compress,
	}, nil
}

// Close flushes every dirty frame and closes the backing file.
func (bp *BufferPool) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	for id, fr := range bp.frames {
		if fr.page.Dirty() {
			if err := bp.flushLocked(fr.page); err != nil {
				return err
			}
		}
		delete(bp.frames, id)
	}
	if err := bp.file.Close(); err != nil {
		return &cterr.IoError{Op: "close", Err: err}
	}
	return nil
}

// Borrow is a pinned reference to a resident Page. Release must be called
// exactly once to unpin it.
type Borrow struct {
	pool *BufferPool
	page *Page
}

// Page returns the borrowed Page.
func (b *Borrow) Page() *Page { return b.page }

// Release unpins the page, making it eligible for eviction again. If the
// borrow was taken under ModeWrite and the page was modified, the caller
// should flush explicitly via BufferPool.Flush before Release if it needs
// durability guarantees sooner than Close.
func (b *Borrow) Release() {
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if fr, ok := b.pool.frames[b.page.ID()]; ok {
		fr.pins--
	}
}

// Acquire pins and returns the page identified by pageID, reading it from
// disk (or allocating it, if it doesn't exist yet) if not already
// resident. The caller must call Release on the returned Borrow.
func (bp *BufferPool) Acquire(ctx context.Context, pageID int64, mode Mode) (*Borrow, error) {
	bp.mu.Lock()
	if fr, ok := bp.frames[pageID]; ok {
		fr.pins++
		fr.touches++
		bp.mu.Unlock()
		return &Borrow{pool: bp, page: fr.page}, nil
	}
	bp.mu.Unlock()

	if err := bp.admit.Acquire(ctx); err != nil {
		return nil, err
	}
	defer bp.admit.Release()

	p, err := bp.loadOrAllocate(pageID)
	if err != nil {
		return nil, err
	}

	bp.mu.Lock()
	defer bp.mu.Unlock()

	if len(bp.frames) >= bp.capacity {
		if err := bp.evictOneLocked(); err != nil {
			return nil, err
		}
	}
	bp.frames[pageID] = &frame{page: p, pins: 1, touches: 1}
	return &Borrow{pool: bp, page: p}, nil
}

func (bp *BufferPool) loadOrAllocate(pageID int64) (*Page, error) {
	p := New(pageID, bp.pageSize)

	buf := p.Bytes()
	n, err := bp.file.ReadAt(buf, pageID*int64(bp.pageSize))
	if err != nil && n == 0 {
		// New page past current EOF: return a zeroed page, it will be
		// written on first flush.
		return p, nil
	}
	if err != nil && n < len(buf) {
		return nil, &cterr.IoError{Op: "read", Err: err}
	}
	return p, nil
}

// Flush writes a dirty page back to the backing file immediately, without
// waiting for eviction or Close.
func (bp *BufferPool) Flush(p *Page) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.flushLocked(p)
}

func (bp *BufferPool) flushLocked(p *Page) error {
	payload := p.Bytes()
	if bp.compress != CompressionNone {
		compressed, err := Compress(bp.compress, payload)
		if err != nil {
			return &cterr.IoError{Op: "compress", Err: err}
		}
		payload = compressed
	}

	if len(payload) > bp.pageSize {
		return fmt.Errorf("page: compressed page %d exceeds page size (%d > %d)", p.ID(), len(payload), bp.pageSize)
	}

	buf := make([]byte, bp.pageSize)
	copy(buf, payload)

	if _, err := bp.file.WriteAt(buf, p.ID()*int64(bp.pageSize)); err != nil {
		return &cterr.IoError{Op: "write", Err: err}
	}
	p.MarkClean()
	return nil
}

// evictOneLocked evicts the unpinned frame with the fewest touches. It
// returns an error if every resident frame is pinned.
func (bp *BufferPool) evictOneLocked() error {
	var coldestID int64
	var coldest *frame
	found := false

	for id, fr := range bp.frames {
		if fr.pins > 0 {
			continue
		}
		if !found || fr.touches < coldest.touches {
			coldestID, coldest = id, fr
			found = true
		}
	}
	if !found {
		return fmt.Errorf("page: buffer pool exhausted, every resident page is pinned")
	}

	if coldest.page.Dirty() {
		if err := bp.flushLocked(coldest.page); err != nil {
			return err
		}
	}
	delete(bp.frames, coldestID)
	return nil
}
