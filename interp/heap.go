package interp

import "fmt"

// Heap is a handle-table allocator: malloc hands back an opaque int64
// handle instead of a raw pointer, and mfree invalidates it. Go's memory
// model and garbage collector make exposing a raw pointer directly to a
// program register unsafe, since the backing array can move or be
// collected out from under it.
type Heap struct {
	blocks map[int64][]byte
	next   int64
}

// NewHeap returns an empty heap. Handle 0 is never issued, so a zeroed
// register reliably means "no allocation".
func NewHeap() *Heap {
	return &Heap{blocks: make(map[int64][]byte), next: 1}
}

// Alloc reserves size bytes and returns their handle.
func (h *Heap) Alloc(size int64) int64 {
	if size < 0 {
		size = 0
	}
	handle := h.next
	h.next++
	h.blocks[handle] = make([]byte, size)
	return handle
}

// Free releases handle. Freeing an unknown or already-freed handle is a
// runtime error.
func (h *Heap) Free(handle int64) error {
	if _, ok := h.blocks[handle]; !ok {
		return fmt.Errorf("mfree on invalid or already-freed handle")
	}
	delete(h.blocks, handle)
	return nil
}

func (h *Heap) block(handle int64) ([]byte, error) {
	b, ok := h.blocks[handle]
	if !ok {
		return nil, fmt.Errorf("invalid handle")
	}
	return b, nil
}

// ReadInt64 reads an 8-byte little-endian value at offset within handle's
// block.
func (h *Heap) ReadInt64(handle, offset int64) (int64, error) {
	b, err := h.block(handle)
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+8 > int64(len(b)) {
		return 0, fmt.Errorf("memory access out of bounds")
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[offset+int64(i)]) << (8 * i)
	}
	return int64(v), nil
}

// WriteInt64 writes an 8-byte little-endian value at offset within
// handle's block.
func (h *Heap) WriteInt64(handle, offset, value int64) error {
	b, err := h.block(handle)
	if err != nil {
		return err
	}
	if offset < 0 || offset+8 > int64(len(b)) {
		return fmt.Errorf("memory access out of bounds")
	}
	v := uint64(value)
	for i := 0; i < 8; i++ {
		b[offset+int64(i)] = byte(v >> (8 * i))
	}
	return nil
}
