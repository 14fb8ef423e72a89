package telemetry

import "github.com/pthm-cable/wator/components"

// LifetimeStats tracks per-organism statistics over its lifetime.
type LifetimeStats struct {
	ID        uint32
	Kind      components.Kind
	BirthTick int32
	ParentID  uint32 // 0 for the initial population

	Children  int
	PreyEaten int // doodlebugs only
}

// LifetimeTracker manages per-organism lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new organism.
func (lt *LifetimeTracker) Register(id uint32, kind components.Kind, birthTick int32, parentID uint32) {
	lt.stats[id] = &LifetimeStats{
		ID:        id,
		Kind:      kind,
		BirthTick: birthTick,
		ParentID:  parentID,
	}
}

// Get returns the lifetime stats for an organism, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an organism's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// RecordMeal increments the prey eaten count.
func (lt *LifetimeTracker) RecordMeal(predatorID uint32) {
	if s := lt.stats[predatorID]; s != nil {
		s.PreyEaten++
	}
}

// Count returns the number of tracked organisms.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// TopBreeder returns the living organism of kind with the most children,
// breaking ties by lowest ID. Returns nil if none are tracked.
func (lt *LifetimeTracker) TopBreeder(kind components.Kind) *LifetimeStats {
	var best *LifetimeStats
	for _, s := range lt.stats {
		if s.Kind != kind {
			continue
		}
		if best == nil || s.Children > best.Children || (s.Children == best.Children && s.ID < best.ID) {
			best = s
		}
	}
	return best
}
