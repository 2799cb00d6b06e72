// Package handle hands out opaque handles for objects that must not cross
// the flat boundary as pointers.
//
// A handle packs a table kind, a slot generation and a slot index. Releasing
// a slot bumps its generation, so a stale handle never resolves again even
// after the slot is reused. The zero handle is never issued.
package handle

import "sync"

// Handle is an opaque reference to an object stored in a Table.
type Handle uint64

// Null is the handle that refers to nothing.
const Null Handle = 0

const (
	indexBits = 32
	genBits   = 24
	genMask   = 1<<genBits - 1
	kindShift = indexBits + genBits
)

// Kind tags the table that issued a handle so a handle from one table is
// rejected by every other.
type Kind uint8

const (
	KindMdApi Kind = iota + 1
	KindTraderApi
	KindMdSpi
	KindTraderSpi
)

func (k Kind) String() string {
	switch k {
	case KindMdApi:
		return "md_api"
	case KindTraderApi:
		return "trader_api"
	case KindMdSpi:
		return "md_spi"
	case KindTraderSpi:
		return "trader_spi"
	}
	return "unknown"
}

func pack(kind Kind, gen uint32, idx uint32) Handle {
	return Handle(uint64(kind)<<kindShift | uint64(gen&genMask)<<indexBits | uint64(idx))
}

func (h Handle) kind() Kind    { return Kind(h >> kindShift) }
func (h Handle) gen() uint32   { return uint32(h>>indexBits) & genMask }
func (h Handle) index() uint32 { return uint32(h) }

type slot[T any] struct {
	value    T
	gen      uint32
	live     bool
	nextFree int
}

// Table stores values addressed by handles. It is safe for concurrent use.
type Table[T any] struct {
	mu       sync.Mutex
	kind     Kind
	slots    []slot[T]
	freeHead int
	live     int
}

// NewTable creates an empty table issuing handles of the given kind.
func NewTable[T any](kind Kind) *Table[T] {
	return &Table[T]{kind: kind, freeHead: -1}
}

// Insert stores v and returns its handle.
func (t *Table[T]) Insert(v T) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	var idx int
	if t.freeHead >= 0 {
		idx = t.freeHead
		t.freeHead = t.slots[idx].nextFree
	} else {
		idx = len(t.slots)
		t.slots = append(t.slots, slot[T]{})
	}

	s := &t.slots[idx]
	s.gen = (s.gen + 1) & genMask
	if s.gen == 0 {
		s.gen = 1
	}
	s.value = v
	s.live = true
	s.nextFree = -1
	t.live++
	return pack(t.kind, s.gen, uint32(idx))
}

func (t *Table[T]) lookup(h Handle) (*slot[T], bool) {
	if h == Null || h.kind() != t.kind {
		return nil, false
	}
	idx := int(h.index())
	if idx >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[idx]
	if !s.live || s.gen != h.gen() {
		return nil, false
	}
	return s, true
}

// Get returns the value behind h. ok is false for the null handle, a handle
// issued by another table and a released handle.
func (t *Table[T]) Get(h Handle) (v T, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.lookup(h)
	if !ok {
		return v, false
	}
	return s.value, true
}

// Remove releases h and returns the value it referred to. Removing a handle
// that does not resolve is a no-op reporting ok == false.
func (t *Table[T]) Remove(h Handle) (v T, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.lookup(h)
	if !ok {
		return v, false
	}
	v = s.value
	var zero T
	s.value = zero
	s.live = false
	s.nextFree = t.freeHead
	t.freeHead = int(h.index())
	t.live--
	return v, true
}

// Len returns the number of live handles.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live
}

// Kind returns the kind of handles this table issues.
func (t *Table[T]) Kind() Kind { return t.kind }
