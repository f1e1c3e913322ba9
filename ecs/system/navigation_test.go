package system

import (
	"testing"

	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
	"github.com/milk9111/shelter/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigationSystemSetsIntent(t *testing.T) {
	w := ecs.NewWorld()
	e := walker(w, tile(2, 0), 40)
	require.NoError(t, ecs.Add(w, e, component.MoveToComponent.Kind(), &component.MoveTo{Target: tile(8, 10)}))

	NewNavigationSystem(twoFloors()).Update(w)

	mv, _ := ecs.Get(w, e, component.MoveableComponent.Kind())
	assert.Equal(t, navigation.Intent{Horizontal: navigation.Right}, mv.Intent)
	assert.True(t, ecs.Has(w, e, component.MoveToComponent.Kind()))
	assert.Empty(t, goalEvents(w))
}

func TestNavigationSystemDropsGoal(t *testing.T) {
	disconnected := navigation.New(tile(0, 0), tile(10, 11),
		[]common.Rect{{X: 0, Y: 0, W: 10, H: 1}, {X: 0, Y: 10, W: 10, H: 1}}, nil)

	cases := []struct {
		name   string
		finder *navigation.PathFinder
		at     common.Tile
		goal   common.Tile
		event  string
	}{
		{"arrived", twoFloors(), tile(8, 10), tile(8, 10), ecs.EventGoalArrived},
		{"same_platform_column", twoFloors(), tile(3, 0), tile(3, 0), ecs.EventGoalArrived},
		{"unreachable", disconnected, tile(2, 0), tile(8, 10), ecs.EventGoalUnreachable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := walker(w, c.at, 40)
			mv, _ := ecs.Get(w, e, component.MoveableComponent.Kind())
			mv.Intent = navigation.Intent{Horizontal: navigation.Left}
			require.NoError(t, ecs.Add(w, e, component.MoveToComponent.Kind(), &component.MoveTo{Target: c.goal}))

			NewNavigationSystem(c.finder).Update(w)

			assert.False(t, ecs.Has(w, e, component.MoveToComponent.Kind()))
			assert.True(t, mv.Intent.IsNone())
			events := goalEvents(w)
			require.Len(t, events, 1)
			assert.Equal(t, c.event, events[0].Type)
			goal := events[0].Data.(ecs.GoalEvent)
			assert.Equal(t, e, goal.Entity)
			assert.Equal(t, c.goal, goal.Target)
			assert.Equal(t, c.at, goal.At)
		})
	}
}

func TestNavigationSystemLeavesStairTravelAlone(t *testing.T) {
	w := ecs.NewWorld()
	e := walker(w, tile(5, 4), 40)
	mv, _ := ecs.Get(w, e, component.MoveableComponent.Kind())
	mv.Mode = component.MoveModeInStair
	mv.Intent = navigation.Intent{Vertical: navigation.Up}
	// The goal is behind the mover; resolving would turn it around.
	require.NoError(t, ecs.Add(w, e, component.MoveToComponent.Kind(), &component.MoveTo{Target: tile(1, 0)}))

	NewNavigationSystem(twoFloors()).Update(w)

	assert.Equal(t, navigation.Intent{Vertical: navigation.Up}, mv.Intent)
	assert.True(t, ecs.Has(w, e, component.MoveToComponent.Kind()))
}

func TestNavigationAndMovementReachGoalUpstairs(t *testing.T) {
	finder := twoFloors()
	w := ecs.NewWorld()
	w.AddSystem(NewNavigationSystem(finder))
	w.AddSystem(NewMovementSystem(testDT, finder.Stairs()))

	e := walker(w, tile(2, 0), 40)
	require.NoError(t, ecs.Add(w, e, component.MoveToComponent.Kind(), &component.MoveTo{Target: tile(8, 10)}))

	climbed := false
	for i := 0; i < 600 && ecs.Has(w, e, component.MoveToComponent.Kind()); i++ {
		w.Update()
		if mv, _ := ecs.Get(w, e, component.MoveableComponent.Kind()); mv.Mode == component.MoveModeInStair {
			climbed = true
		}
	}

	require.False(t, ecs.Has(w, e, component.MoveToComponent.Kind()), "goal not reached in time")
	assert.True(t, climbed)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, tile(8, 10), tr.Tile())
}

func TestNavigationAndMovementReachGoalDownstairs(t *testing.T) {
	finder := twoFloors()
	w := ecs.NewWorld()
	w.AddSystem(NewNavigationSystem(finder))
	w.AddSystem(NewMovementSystem(testDT, finder.Stairs()))

	e := walker(w, tile(9, 10), 40)
	require.NoError(t, ecs.Add(w, e, component.MoveToComponent.Kind(), &component.MoveTo{Target: tile(1, 0)}))

	for i := 0; i < 600 && ecs.Has(w, e, component.MoveToComponent.Kind()); i++ {
		w.Update()
	}

	require.False(t, ecs.Has(w, e, component.MoveToComponent.Kind()), "goal not reached in time")
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, tile(1, 0), tr.Tile())
}

func TestNavigationGivesUpBelowOffRowStair(t *testing.T) {
	finder := navigation.New(tile(0, 0), tile(10, 21),
		[]common.Rect{
			{X: 0, Y: 0, W: 10, H: 4},
			{X: 0, Y: 10, W: 10, H: 1},
			{X: 0, Y: 20, W: 10, H: 1},
		},
		[]navigation.Stair{
			{From: tile(2, 3), To: tile(2, 10)},
			{From: tile(2, 0), To: tile(8, 20)},
		},
	)
	w := ecs.NewWorld()
	w.AddSystem(NewNavigationSystem(finder))
	w.AddSystem(NewMovementSystem(testDT, finder.Stairs()))

	e := walker(w, tile(8, 20), 40)
	require.NoError(t, ecs.Add(w, e, component.MoveToComponent.Kind(), &component.MoveTo{Target: tile(5, 10)}))

	for i := 0; i < 1200 && ecs.Has(w, e, component.MoveToComponent.Kind()); i++ {
		w.Update()
	}

	require.False(t, ecs.Has(w, e, component.MoveToComponent.Kind()), "goal never dropped")
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, 0, tr.Tile().Y)
}
