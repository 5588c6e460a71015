package mocks

import (
	"fmt"
	"sync"

	"github.com/atelier-ops/content-engine/internal/platform"
)

// SequenceIDGenerator issues predictable ids: prefix-1, prefix-2, ...
type SequenceIDGenerator struct {
	Prefix string
	mu     sync.Mutex
	next   int
	Issued []string
}

// Verify interface compliance
var _ platform.IDGenerator = (*SequenceIDGenerator)(nil)

func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	return &SequenceIDGenerator{Prefix: prefix}
}

func (g *SequenceIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	id := fmt.Sprintf("%s-%d", g.Prefix, g.next)
	g.Issued = append(g.Issued, id)
	return id
}
