// Package testutil provides deterministic stand-ins for the sources of
// non-determinism in result export, so that scenario runs produce
// byte-identical snapshots.
package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDGenerator names result sets "<prefix>-1", "<prefix>-2", ...
//
// Unlike store.UUIDv7Generator, the sequence can be reset for test reuse,
// so the same scenario run twice exports the same IDs.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewSequentialIDGenerator creates a generator whose first ID is
// "<prefix>-1". An empty prefix becomes "result".
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "result"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// Generate returns the next ID in the sequence.
//
// Implements store.IDGenerator.
func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", g.prefix, g.seq)
}

// Current returns how many IDs have been generated.
func (g *SequentialIDGenerator) Current() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset restarts the sequence. The next ID is "<prefix>-1" again.
func (g *SequentialIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
