package navigation

import (
	"testing"

	"github.com/milk9111/shelter/common"
	"github.com/stretchr/testify/assert"
)

func TestResolveTwoFloors(t *testing.T) {
	pf := twoFloors()
	goal := tile(8, 10)

	cases := []struct {
		name   string
		at     common.Tile
		intent Intent
		status Status
	}{
		{"walk_to_stair", tile(2, 0), Intent{Horizontal: Right}, Navigating},
		{"walk_back_to_stair", tile(9, 0), Intent{Horizontal: Left}, Navigating},
		{"climb", tile(5, 0), Intent{Vertical: Up}, Navigating},
		{"mid_stair", tile(5, 3), Intent{Vertical: Up}, Navigating},
		{"top_of_stair", tile(5, 10), Intent{Horizontal: Right}, Navigating},
		{"arrived", tile(8, 10), Intent{}, Arrived},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in, st := pf.Resolve(c.at, goal)
			assert.Equal(t, c.intent, in)
			assert.Equal(t, c.status, st)
		})
	}
}

func TestResolveDownward(t *testing.T) {
	pf := twoFloors()

	in, st := pf.Resolve(tile(5, 7), tile(1, 0))
	assert.Equal(t, Intent{Vertical: Down}, in)
	assert.Equal(t, Navigating, st)

	in, _ = pf.Resolve(tile(5, 10), tile(1, 0))
	assert.Equal(t, Intent{Vertical: Down}, in)
}

func TestResolveWalksMiddleFloor(t *testing.T) {
	pf := threeFloors()
	goal := tile(5, 20)

	steps := []struct {
		at     common.Tile
		intent Intent
	}{
		{tile(2, 0), Intent{Horizontal: Right}},
		{tile(8, 0), Intent{Vertical: Up}},
		{tile(8, 10), Intent{Horizontal: Left}},
		{tile(4, 10), Intent{Horizontal: Left}},
		{tile(1, 10), Intent{Vertical: Up}},
		{tile(1, 20), Intent{Horizontal: Right}},
	}
	for _, s := range steps {
		in, st := pf.Resolve(s.at, goal)
		assert.Equal(t, s.intent, in, "at %v", s.at)
		assert.Equal(t, Navigating, st, "at %v", s.at)
	}
	assert.Equal(t, []common.Tile{tile(8, 0), tile(8, 10), tile(1, 10), tile(1, 20)}, pf.Route(tile(2, 0), goal))
}

func TestResolveAlreadyAtGoal(t *testing.T) {
	pf := twoFloors()
	cases := []struct {
		name   string
		at     common.Tile
		target common.Tile
	}{
		{"same_tile", tile(3, 0), tile(3, 0)},
		{"same_tile_on_boundary", tile(3, 5), tile(3, 5)},
		{"same_tile_top_floor", tile(7, 10), tile(7, 10)},
		{"clamped_to_same_tile", tile(-4, 0), tile(0, 0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in, st := pf.Resolve(c.at, c.target)
			assert.True(t, in.IsNone())
			assert.Equal(t, Arrived, st)
		})
	}
}

func TestResolveSamePlatform(t *testing.T) {
	pf := twoFloors()

	in, st := pf.Resolve(tile(1, 10), tile(9, 10))
	assert.Equal(t, Intent{Horizontal: Right}, in)
	assert.Equal(t, Navigating, st)

	in, st = pf.Resolve(tile(9, 0), tile(0, 0))
	assert.Equal(t, Intent{Horizontal: Left}, in)
	assert.Equal(t, Navigating, st)
	assert.Nil(t, pf.Route(tile(9, 0), tile(0, 0)))
}

func TestResolveUnreachable(t *testing.T) {
	pf := New(tile(0, 0), tile(10, 21),
		[]common.Rect{
			{X: 0, Y: 0, W: 10, H: 1},
			{X: 0, Y: 10, W: 10, H: 1},
			{X: 0, Y: 20, W: 10, H: 1},
		},
		[]Stair{{From: tile(5, 0), To: tile(5, 10)}},
	)

	cases := []struct {
		name   string
		at     common.Tile
		target common.Tile
	}{
		{"no_stair_to_top", tile(2, 0), tile(3, 20)},
		{"from_top", tile(3, 20), tile(2, 0)},
		{"into_empty_air", tile(2, 0), tile(2, 15)},
		{"from_empty_air", tile(2, 15), tile(2, 0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in, st := pf.Resolve(c.at, c.target)
			assert.True(t, in.IsNone())
			assert.Equal(t, Unreachable, st)
			assert.Nil(t, pf.Route(c.at, c.target))
		})
	}
}

func TestResolveMidStairGoal(t *testing.T) {
	pf := twoFloors()

	in, st := pf.Resolve(tile(2, 0), tile(5, 4))
	assert.Equal(t, Intent{Horizontal: Right}, in)
	assert.Equal(t, Navigating, st)

	// The nearest node to (5,4) is the foot of the stair.
	in, st = pf.Resolve(tile(5, 0), tile(5, 4))
	assert.True(t, in.IsNone())
	assert.Equal(t, Arrived, st)
}

func TestResolveIdempotent(t *testing.T) {
	pf := threeFloors()
	for x := range 10 {
		for _, y := range []int{0, 5, 10, 20} {
			in1, st1 := pf.Resolve(tile(x, y), tile(5, 20))
			in2, st2 := pf.Resolve(tile(x, y), tile(5, 20))
			assert.Equal(t, in1, in2)
			assert.Equal(t, st1, st2)
		}
	}
}

func TestResolveWorld(t *testing.T) {
	pf := twoFloors()
	in, st := pf.ResolveWorld(common.TileCenter(tile(2, 0)), common.TileCenter(tile(8, 10)))
	assert.Equal(t, Intent{Horizontal: Right}, in)
	assert.Equal(t, Navigating, st)
}

// tallRoom has a four row room whose upper row carries a stair to the middle
// floor while its floor row carries a stair to the top floor. Both stairs
// start in column 2.
func tallRoom() *PathFinder {
	return New(tile(0, 0), tile(10, 21),
		[]common.Rect{
			{X: 0, Y: 0, W: 10, H: 4},
			{X: 0, Y: 10, W: 10, H: 1},
			{X: 0, Y: 20, W: 10, H: 1},
		},
		[]Stair{
			{From: tile(2, 3), To: tile(2, 10)},
			{From: tile(2, 0), To: tile(8, 20)},
		},
	)
}

func TestResolveStairOffMoverRow(t *testing.T) {
	pf := tallRoom()

	// The middle floor is only reached from row 3, which a mover on the floor
	// row cannot climb to. Going up here would take the stair to the top floor.
	in, st := pf.Resolve(tile(2, 0), tile(5, 10))
	assert.True(t, in.IsNone())
	assert.Equal(t, Unreachable, st)
	assert.Nil(t, pf.Route(tile(2, 0), tile(5, 10)))

	in, st = pf.Resolve(tile(5, 0), tile(5, 10))
	assert.NotEqual(t, Up, in.Vertical)
	assert.NotEqual(t, Arrived, st)

	// From the top floor the only way out leads down into the room, where the
	// goal is then given up instead of sending the mover back up.
	in, st = pf.Resolve(tile(8, 20), tile(5, 10))
	assert.Equal(t, Intent{Vertical: Down}, in)
	assert.Equal(t, Navigating, st)

	// Standing on the stair's own row still climbs it.
	in, st = pf.Resolve(tile(2, 3), tile(5, 10))
	assert.Equal(t, Intent{Vertical: Up}, in)
	assert.Equal(t, Navigating, st)
}
