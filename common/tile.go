package common

import (
	"fmt"
	"math"
)

// TileSize is the world-space edge length of one tile.
const TileSize = 10.0

// Tile is an integer grid coordinate. Y grows upward.
type Tile struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (t Tile) Add(o Tile) Tile { return Tile{X: t.X + o.X, Y: t.Y + o.Y} }
func (t Tile) Sub(o Tile) Tile { return Tile{X: t.X - o.X, Y: t.Y - o.Y} }

// ClampTo clamps each axis into [lo, hi].
func (t Tile) ClampTo(lo, hi Tile) Tile {
	return Tile{X: Clamp(t.X, lo.X, hi.X), Y: Clamp(t.Y, lo.Y, hi.Y)}
}

// Distance is the Euclidean distance between two tiles.
func (t Tile) Distance(o Tile) float64 {
	dx := float64(o.X - t.X)
	dy := float64(o.Y - t.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// Rect is a tile rectangle given by its lower-left tile and its size.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (r Rect) Min() Tile { return Tile{X: r.X, Y: r.Y} }
func (r Rect) Max() Tile { return Tile{X: r.X + r.W, Y: r.Y + r.H} }

// Contains reports whether t lies inside the half-open rectangle.
func (r Rect) Contains(t Tile) bool {
	return t.X >= r.X && t.X < r.X+r.W && t.Y >= r.Y && t.Y < r.Y+r.H
}

// Vec is a world-space point.
type Vec struct {
	X float64
	Y float64
}

func (v Vec) Add(o Vec) Vec          { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec          { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec    { return Vec{X: v.X * s, Y: v.Y * s} }
func (v Vec) Dot(o Vec) float64      { return v.X*o.X + v.Y*o.Y }
func (v Vec) Length() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector of v, or zero for a zero vector.
func (v Vec) Normalize() Vec {
	l := v.Length()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// TileOf maps a world position to the tile containing it.
func TileOf(v Vec) Tile {
	return Tile{
		X: int(math.Floor(v.X / TileSize)),
		Y: int(math.Floor(v.Y / TileSize)),
	}
}

// TileOrigin returns the world position of a tile's lower-left corner.
func TileOrigin(t Tile) Vec {
	return Vec{X: float64(t.X) * TileSize, Y: float64(t.Y) * TileSize}
}

// TileCenter returns the world position of a tile's centre. Movers stand on
// tile centres so that small integration error never changes their tile.
func TileCenter(t Tile) Vec {
	return Vec{X: (float64(t.X) + 0.5) * TileSize, Y: (float64(t.Y) + 0.5) * TileSize}
}
