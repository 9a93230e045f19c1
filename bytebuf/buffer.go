// Package bytebuf implements the ByteBuffer container described by the XISF
// specification's data model: a value-semantics byte sequence with cheap
// cloning and base-64/base-16 transport codecs built in.
//
// A Buffer shares its backing array across copies (reference-counted); any
// mutating method first clones the backing array if it is shared, so two
// Buffer values obtained from Clone never observe each other's writes. This
// mirrors mebo's pooled-buffer growth strategy (internal/pool) but adds the
// copy-on-write semantics the spec requires for ByteBuffer specifically.
package bytebuf

import "sync/atomic"

// Buffer owns a byte sequence with copy-on-write value semantics.
//
// The zero value is an empty, unshared Buffer ready to use.
type Buffer struct {
	data  []byte
	count *int32 // shared reference count; nil means uniquely owned
}

// New creates a zero-filled Buffer of the given size.
func New(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// FromBytes creates a Buffer that copies the given bytes.
func FromBytes(b []byte) *Buffer {
	buf := &Buffer{data: make([]byte, len(b))}
	copy(buf.data, b)

	return buf
}

// FromString creates a Buffer from a NUL-terminated string's bytes (the NUL
// terminator itself is not included, matching a C-string construction).
func FromString(s string) *Buffer {
	return FromBytes([]byte(s))
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}

	return len(b.data)
}

// Bytes returns the buffer's contents. The returned slice aliases the
// buffer's backing array and must not be retained across a mutating call.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}

	return b.data
}

// At returns the byte at index i.
func (b *Buffer) At(i int) byte {
	return b.data[i]
}

// Set writes v at index i, copying the backing array first if it is shared
// with another Buffer.
func (b *Buffer) Set(i int, v byte) {
	b.detach()
	b.data[i] = v
}

// Resize grows or shrinks the buffer to exactly n bytes. New bytes, if any,
// are zero-filled.
func (b *Buffer) Resize(n int) {
	b.detach()

	switch {
	case n == len(b.data):
		return
	case n < len(b.data):
		b.data = b.data[:n]
	default:
		grown := make([]byte, n)
		copy(grown, b.data)
		b.data = grown
	}
}

// Append adds a single byte to the end of the buffer.
func (b *Buffer) Append(v byte) {
	b.detach()
	b.data = append(b.data, v)
}

// Clone returns a Buffer sharing this buffer's backing array. The clone is
// safe to mutate independently: the first write to either Buffer after
// Clone copies the backing array before mutating it.
func (b *Buffer) Clone() *Buffer {
	if b.count == nil {
		n := int32(1)
		b.count = &n
	}
	atomic.AddInt32(b.count, 1)

	return &Buffer{data: b.data, count: b.count}
}

// detach ensures this Buffer's backing array is not shared with any clone,
// copying it first if necessary. Called at the top of every mutating method.
func (b *Buffer) detach() {
	if b.count == nil {
		return
	}
	if atomic.LoadInt32(b.count) <= 1 {
		b.count = nil

		return
	}

	atomic.AddInt32(b.count, -1)
	owned := make([]byte, len(b.data))
	copy(owned, b.data)
	b.data = owned
	b.count = nil
}

// Equal reports whether two buffers hold identical bytes.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.Len() != other.Len() {
		return false
	}
	for i := range b.data {
		if b.data[i] != other.data[i] {
			return false
		}
	}

	return true
}
