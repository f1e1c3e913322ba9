package ecs

import (
	"slices"

	"github.com/milk9111/shelter/ecs/component"
)

// Query returns the live entities holding every listed kind, in the dense
// order of the smallest store. The result is a copy and safe to iterate while
// mutating the world.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	slices.SortFunc(sets, func(a, b *SparseSet) int { return a.Len() - b.Len() })

	out := make([]Entity, 0, sets[0].Len())
	for _, e := range sets[0].Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		if containsAll(sets[1:], e) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity holding kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, e := range w.store(kind.ID(), false).Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

func containsAll(sets []*SparseSet, e Entity) bool {
	for _, s := range sets {
		if !s.Has(e) {
			return false
		}
	}
	return true
}
