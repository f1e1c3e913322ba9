package levels

import (
	"errors"
	"fmt"

	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/navigation"
)

// ErrInvalidLayout is returned for layouts that cannot be built.
var ErrInvalidLayout = errors.New("levels: invalid layout")

// Shelter describes a shelter in tiles. Floors are numbered from the surface
// down: floor 0 is the surface, floor k sits below floor k-1 separated by a
// slab. Every floor pair is joined by stairs on the right-hand side.
type Shelter struct {
	Name          string `yaml:"name"`
	Columns       int    `yaml:"columns"`
	Floors        int    `yaml:"floors"`
	RoomWidth     int    `yaml:"room_width"`
	FloorHeight   int    `yaml:"floor_height"`
	Slab          int    `yaml:"slab"`
	StairWidth    int    `yaml:"stair_width"`
	OutsideHeight int    `yaml:"outside_height"`
	Zigzag        bool   `yaml:"zigzag"`

	// Extra platforms and stairs are registered after the generated ones.
	Platforms []common.Rect      `yaml:"platforms"`
	Stairs    []navigation.Stair `yaml:"stairs"`

	Residents []Resident `yaml:"residents"`
}

// Resident is a spawn point. Room.Y is the floor, Room.X the room column.
type Resident struct {
	Name    string      `yaml:"name"`
	Prefab  string      `yaml:"prefab"`
	Routine string      `yaml:"routine"`
	Room    common.Tile `yaml:"room"`
}

// DefaultShelter is the 7×5 shelter with zigzag stairs.
func DefaultShelter() *Shelter {
	return &Shelter{
		Name:          "shelter",
		Columns:       7,
		Floors:        5,
		RoomWidth:     12,
		FloorHeight:   12,
		Slab:          1,
		StairWidth:    9,
		OutsideHeight: 25,
		Zigzag:        true,
	}
}

func (s *Shelter) Validate() error {
	switch {
	case s.Floors <= 0:
		return fmt.Errorf("%w: %w", ErrInvalidLayout, errNoFloors)
	case s.Columns <= 0, s.RoomWidth <= 0:
		return fmt.Errorf("%w: columns and room_width must be positive", ErrInvalidLayout)
	case s.FloorHeight <= 0, s.OutsideHeight <= 0:
		return fmt.Errorf("%w: floor_height and outside_height must be positive", ErrInvalidLayout)
	case s.Slab < 0:
		return fmt.Errorf("%w: slab must not be negative", ErrInvalidLayout)
	case s.StairWidth < 3:
		return fmt.Errorf("%w: stair_width must be at least 3", ErrInvalidLayout)
	}
	for i, r := range s.Residents {
		if r.Room.Y < 0 || r.Room.Y > s.Floors || r.Room.X < 0 || r.Room.X >= s.Columns {
			return fmt.Errorf("%w: resident %d room %v outside the shelter", ErrInvalidLayout, i, r.Room)
		}
	}
	return nil
}

// Width is the shelter width in tiles, rooms plus the stair well.
func (s *Shelter) Width() int {
	return s.Columns*s.RoomWidth + s.StairWidth
}

// FloorY is the walking row of floor k.
func (s *Shelter) FloorY(k int) int {
	return -k * (s.FloorHeight + s.Slab)
}

// Bounds returns the navigable region: its lower-left tile and size.
func (s *Shelter) Bounds() (origin, size common.Tile) {
	bottom := s.FloorY(s.Floors)
	return common.Tile{X: 0, Y: bottom}, common.Tile{X: s.Width(), Y: s.OutsideHeight - bottom}
}

// Navigation returns everything the path finder is built from.
func (s *Shelter) Navigation() (origin, size common.Tile, platforms []common.Rect, stairs []navigation.Stair) {
	origin, size = s.Bounds()
	width := s.Width()

	platforms = append(platforms, common.Rect{X: 0, Y: 0, W: width, H: s.OutsideHeight})
	for k := 1; k <= s.Floors; k++ {
		platforms = append(platforms, common.Rect{X: 0, Y: s.FloorY(k), W: width, H: s.FloorHeight})
	}

	foot := width - s.StairWidth
	side := width - 2
	for k := 1; k <= s.Floors; k++ {
		bottom := common.Tile{X: foot, Y: s.FloorY(k)}
		top := common.Tile{X: foot, Y: s.FloorY(k - 1)}
		if !s.Zigzag {
			stairs = append(stairs, navigation.Stair{From: bottom, To: common.Tile{X: side, Y: top.Y}})
			continue
		}
		landing := common.Tile{X: side, Y: bottom.Y + (s.FloorHeight+s.Slab)/2}
		platforms = append(platforms, common.Rect{X: side, Y: landing.Y, W: 2, H: 1})
		stairs = append(stairs,
			navigation.Stair{From: bottom, To: landing},
			navigation.Stair{From: landing, To: top},
		)
	}

	platforms = append(platforms, s.Platforms...)
	stairs = append(stairs, s.Stairs...)
	return origin, size, platforms, stairs
}

// PathFinder builds the navigation data for the shelter.
func (s *Shelter) PathFinder() *navigation.PathFinder {
	origin, size, platforms, stairs := s.Navigation()
	return navigation.New(origin, size, platforms, stairs)
}

// RoomTile is the walking tile in the middle of a room.
func (s *Shelter) RoomTile(room common.Tile) common.Tile {
	return common.Tile{X: room.X*s.RoomWidth + s.RoomWidth/2, Y: s.FloorY(room.Y)}
}
