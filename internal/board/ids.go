package board

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// DefaultIDPrefix prefixes generated task ids.
const DefaultIDPrefix = "task-"

// IDGenerator produces task ids that are unique for the life of a board.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUID based ids.
type UUIDGenerator struct {
	Prefix string
}

// NewID returns Prefix followed by a random UUID.
func (g UUIDGenerator) NewID() string {
	return g.Prefix + uuid.NewString()
}

// SequenceGenerator generates ids from a monotonic counter.
// It is safe for concurrent use.
type SequenceGenerator struct {
	Prefix string
	next   atomic.Uint64
}

// NewSequenceGenerator returns a generator whose first id uses start.
func NewSequenceGenerator(prefix string, start uint64) *SequenceGenerator {
	g := &SequenceGenerator{Prefix: prefix}
	g.next.Store(start)
	return g
}

// NewID returns the next id in the sequence.
func (g *SequenceGenerator) NewID() string {
	n := g.next.Add(1) - 1
	return fmt.Sprintf("%s%d", g.Prefix, n)
}
