package kernel

import "sync"

// sharedSlots matches the default endpoint depth, so every request a
// mailbox can hold also has room for its payload.
const sharedSlots = mailboxSlots

// SharedBuffer carries transfers larger than MaxMessageBytes.
//
// The writer stores a copy and sends the returned sequence number in a
// notify message; the reader takes that exact sequence. Each write keeps its
// own slot until it is taken or discarded, so a later write never replaces an
// earlier one. The zero value holds up to sharedSlots pending writes.
type SharedBuffer struct {
	mu      sync.Mutex
	seq     uint32
	slots   int
	pending map[uint32][]byte
}

// NewSharedBuffer returns a buffer that holds up to slots pending writes.
func NewSharedBuffer(slots int) *SharedBuffer {
	return &SharedBuffer{slots: slots}
}

// Write copies data into a fresh slot and returns its sequence number.
// ok is false when every slot is still waiting for its reader.
func (b *SharedBuffer) Write(data []byte) (seq uint32, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	limit := b.slots
	if limit <= 0 {
		limit = sharedSlots
	}
	if len(b.pending) >= limit {
		return 0, false
	}
	if b.pending == nil {
		b.pending = make(map[uint32][]byte, limit)
	}
	b.seq++
	if b.seq == 0 {
		b.seq++
	}
	b.pending[b.seq] = append([]byte(nil), data...)
	return b.seq, true
}

// Read takes the data written under seq and frees its slot.
// ok is false for an unknown or already taken sequence.
func (b *SharedBuffer) Read(seq uint32) (data []byte, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok = b.pending[seq]
	if ok {
		delete(b.pending, seq)
	}
	return data, ok
}

// Discard frees the slot for seq without reading it. Writers use it when the
// notify message could not be sent.
func (b *SharedBuffer) Discard(seq uint32) {
	b.mu.Lock()
	delete(b.pending, seq)
	b.mu.Unlock()
}

// Pending reports how many writes are waiting for a reader.
func (b *SharedBuffer) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
