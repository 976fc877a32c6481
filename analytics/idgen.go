package analytics

import "sync"

// IDGenerator hands out incrementing IDs, starting at 1.
type IDGenerator struct {
	id uint32
	sync.Mutex
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// GetNext returns the next ID.
func (g *IDGenerator) GetNext() uint32 {
	g.Lock()
	defer g.Unlock()
	g.id++
	return g.id
}
