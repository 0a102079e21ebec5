package dfamin

import "slices"

// signature lists, in alphabet order, the block index holding the destination of each
// symbol.
type signature []int32

// Hash combines the mixed components so that permutations hash differently.
func (s signature) Hash() uint64 {
	h := uint64(len(s))
	for _, v := range s {
		h = h*31 + uint64(mix32(v+1))
	}
	return h
}

func (s signature) Equals(other signature) bool {
	return slices.Equal(s, other)
}

// signatureTable groups states of one block by signature. It maps each distinct signature
// to the ordinal it was first seen with, so callers can emit sub-blocks in a stable order.
const defaultLoadFactor = 0.75

type signatureTable struct {
	buckets    []*tableEntry
	size       int
	mask       uint64
	loadFactor float64
}

type tableEntry struct {
	key   signature
	value int
	next  *tableEntry
}

type tableOptions struct {
	capacity int // rounded up to a power of two, default 1
}

type tableOption func(*tableOptions)

func withTableCapacity(capacity int) tableOption {
	return func(o *tableOptions) {
		o.capacity = capacity
	}
}

func newSignatureTable(options ...tableOption) *signatureTable {
	opts := &tableOptions{
		capacity: 1,
	}
	for _, opt := range options {
		opt(opts)
	}

	realCap := 1
	for realCap < opts.capacity {
		realCap <<= 1
	}

	return &signatureTable{
		buckets:    make([]*tableEntry, realCap),
		mask:       uint64(realCap - 1),
		loadFactor: defaultLoadFactor,
	}
}

// lookupOrInsert returns the ordinal stored for key. When key is new it is stored with
// ordinal next and the second result is false.
func (m *signatureTable) lookupOrInsert(key signature, next int) (int, bool) {
	index := key.Hash() & m.mask
	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e.value, true
		}
	}

	m.buckets[index] = &tableEntry{
		key:   key,
		value: next,
		next:  m.buckets[index],
	}
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > m.loadFactor {
		m.resize()
	}
	return next, false
}

func (m *signatureTable) resize() {
	newCap := len(m.buckets) << 1
	newBuckets := make([]*tableEntry, newCap)
	newMask := uint64(newCap - 1)

	for _, head := range m.buckets {
		for e := head; e != nil; {
			next := e.next
			i := e.key.Hash() & newMask
			e.next = newBuckets[i]
			newBuckets[i] = e
			e = next
		}
	}

	m.buckets = newBuckets
	m.mask = newMask
}
