package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
	"github.com/milk9111/shelter/levels"
)

const (
	clockPrefab  = "clock.yaml"
	personPrefab = "person.yaml"
)

// LoadShelterToWorld spawns the clock, the camera centred on the layout, and
// every resident. It stops at the first failure.
func LoadShelterToWorld(w *ecs.World, s *levels.Shelter) error {
	if w == nil || s == nil {
		return fmt.Errorf("load shelter: nil world or layout")
	}
	if _, err := BuildEntity(w, clockPrefab); err != nil {
		return fmt.Errorf("load shelter: clock: %w", err)
	}

	origin, size := s.Bounds()
	center := common.TileOrigin(origin).Add(common.TileOrigin(size).Scale(0.5))
	if _, err := NewCameraAt(w, center); err != nil {
		return fmt.Errorf("load shelter: %w", err)
	}

	for _, r := range s.Residents {
		if _, err := NewResident(w, s, r); err != nil {
			return fmt.Errorf("load shelter: %w", err)
		}
	}
	log.Printf("entity: shelter %q spawned %d residents", s.Name, len(s.Residents))
	return nil
}

// NewResident builds the resident's prefab at the centre of its room's floor
// tile. The layout's routine overrides the prefab's; a resident with no
// routine script only moves when ordered.
func NewResident(w *ecs.World, s *levels.Shelter, r levels.Resident) (ecs.Entity, error) {
	prefab := r.Prefab
	if prefab == "" {
		prefab = personPrefab
	}
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, fmt.Errorf("resident %s: %w", r.Name, err)
	}

	if err := SetEntityPosition(w, e, common.TileCenter(s.RoomTile(r.Room))); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("resident %s: %w", r.Name, err)
	}

	if p, ok := ecs.Get(w, e, component.PersonComponent.Kind()); ok {
		p.Name = r.Name
	} else if err := ecs.Add(w, e, component.PersonComponent.Kind(), &component.Person{Name: r.Name, Prefab: prefab}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("resident %s: %w", r.Name, err)
	}

	if rt, ok := ecs.Get(w, e, component.RoutineComponent.Kind()); ok {
		if r.Routine != "" {
			rt.Script = r.Routine
		}
		if rt.Script == "" {
			ecs.Remove(w, e, component.RoutineComponent.Kind())
		}
	}
	return e, nil
}
