package ecs

import (
	"testing"

	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			require.Len(t, Entities(w), c.create)
			if c.destroyIndex >= 0 {
				require.True(t, DestroyEntity(w, ents[c.destroyIndex]))
				assert.False(t, IsAlive(w, ents[c.destroyIndex]))
				assert.False(t, DestroyEntity(w, ents[c.destroyIndex]), "second destroy")
				assert.Len(t, Entities(w), c.create-1)
			}
		})
	}
}

func TestEntitySlotRecycling(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	a := CreateEntity(w)
	require.NoError(t, Add(w, a, h.Kind(), intPtr(1)))
	require.True(t, DestroyEntity(w, a))

	b := CreateEntity(w)
	assert.Equal(t, a.id(), b.id(), "slot reused")
	assert.NotEqual(t, a, b, "generation bumped")
	assert.False(t, IsAlive(w, a))
	assert.False(t, Has(w, b, h.Kind()), "components do not survive the old generation")

	_, ok := Get(w, a, h.Kind())
	assert.False(t, ok)
	assert.ErrorIs(t, Add(w, a, h.Kind(), intPtr(2)), component.ErrEntityNotAlive)
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()
	h3 := component.NewComponent[float64]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	require.NoError(t, Add(w, e1, h1.Kind(), intPtr(1)))
	require.NoError(t, Add(w, e1, h2.Kind(), stringPtr("one")))
	require.NoError(t, Add(w, e2, h1.Kind(), intPtr(2)))
	require.NoError(t, Add(w, e3, h2.Kind(), stringPtr("three")))
	require.NoError(t, Add(w, e3, h3.Kind(), float64Ptr(3)))

	tests := []struct {
		name  string
		kinds []component.Kind
		want  []Entity
	}{
		{"int", []component.Kind{h1.Kind()}, []Entity{e1, e2}},
		{"string", []component.Kind{h2.Kind()}, []Entity{e1, e3}},
		{"int_and_string", []component.Kind{h1.Kind(), h2.Kind()}, []Entity{e1}},
		{"string_and_float", []component.Kind{h2.Kind(), h3.Kind()}, []Entity{e3}},
		{"all_three", []component.Kind{h1.Kind(), h2.Kind(), h3.Kind()}, nil},
		{"none", nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, toSet(tc.want), toSet(w.Query(tc.kinds...)))
		})
	}

	t.Run("get_returns_pointer", func(t *testing.T) {
		v, ok := Get(w, e1, h1.Kind())
		require.True(t, ok)
		*v = 10
		again, _ := Get(w, e1, h1.Kind())
		assert.Equal(t, 10, *again)
	})

	t.Run("replace", func(t *testing.T) {
		require.NoError(t, Add(w, e2, h1.Kind(), intPtr(20)))
		v, ok := Get(w, e2, h1.Kind())
		require.True(t, ok)
		assert.Equal(t, 20, *v)
	})

	t.Run("remove", func(t *testing.T) {
		assert.True(t, Remove(w, e3, h3.Kind()))
		assert.False(t, Remove(w, e3, h3.Kind()))
		assert.False(t, Has(w, e3, h3.Kind()))
		assert.Empty(t, w.Query(h3.Kind()))
	})

	t.Run("destroy_drops_components", func(t *testing.T) {
		require.True(t, DestroyEntity(w, e1))
		assert.Equal(t, toSet([]Entity{e2}), toSet(w.Query(h1.Kind())))
		assert.Equal(t, toSet([]Entity{e3}), toSet(w.Query(h2.Kind())))
	})
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)

	assert.ErrorIs(t, Add(w, e, h.Kind(), nil), component.ErrNilComponent)
	assert.ErrorIs(t, Add(w, e, component.ComponentKind[int]{}, intPtr(1)), component.ErrInvalidComponentKind)
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	pos := component.NewComponent[common.Vec]()
	speed := component.NewComponent[float64]()
	name := component.NewComponent[string]()

	a := CreateEntity(w)
	b := CreateEntity(w)
	require.NoError(t, Add(w, a, pos.Kind(), &common.Vec{X: 1}))
	require.NoError(t, Add(w, a, speed.Kind(), float64Ptr(2)))
	require.NoError(t, Add(w, a, name.Kind(), stringPtr("a")))
	require.NoError(t, Add(w, b, pos.Kind(), &common.Vec{X: 5}))

	t.Run("single_mutates", func(t *testing.T) {
		ForEach(w, pos.Kind(), func(_ Entity, p *common.Vec) { p.X++ })
		pa, _ := Get(w, a, pos.Kind())
		pb, _ := Get(w, b, pos.Kind())
		assert.Equal(t, 2.0, pa.X)
		assert.Equal(t, 6.0, pb.X)
	})

	t.Run("two", func(t *testing.T) {
		var seen []Entity
		ForEach2(w, pos.Kind(), speed.Kind(), func(e Entity, p *common.Vec, s *float64) {
			seen = append(seen, e)
			p.X += *s
		})
		assert.Equal(t, []Entity{a}, seen)
		pa, _ := Get(w, a, pos.Kind())
		assert.Equal(t, 4.0, pa.X)
	})

	t.Run("three", func(t *testing.T) {
		count := 0
		ForEach3(w, pos.Kind(), speed.Kind(), name.Kind(), func(e Entity, _ *common.Vec, _ *float64, n *string) {
			count++
			assert.Equal(t, "a", *n)
		})
		assert.Equal(t, 1, count)
	})

	t.Run("remove_during_iteration", func(t *testing.T) {
		ForEach(w, pos.Kind(), func(e Entity, _ *common.Vec) {
			Remove(w, e, pos.Kind())
		})
		assert.Empty(t, w.Query(pos.Kind()))
	})
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[string]()

	_, _, ok := First(w, h.Kind())
	assert.False(t, ok)

	e := CreateEntity(w)
	require.NoError(t, Add(w, e, h.Kind(), stringPtr("clock")))

	got, v, ok := First(w, h.Kind())
	require.True(t, ok)
	assert.Equal(t, e, got)
	assert.Equal(t, "clock", *v)

	DestroyEntity(w, e)
	_, ok = w.First(h.Kind())
	assert.False(t, ok)
}

func TestUpdateRunsSystemsInOrderAndFlushesEvents(t *testing.T) {
	w := NewWorld()
	var order []string
	var seen []Event

	w.AddSystem(SystemFunc(func(w *World) {
		order = append(order, "push")
		w.Events().Push(Event{Type: EventGoalArrived, Data: GoalEvent{Target: common.Tile{X: 1}}})
	}))
	w.AddSystem(SystemFunc(func(w *World) {
		order = append(order, "peek")
		seen = append(seen, w.Events().Peek()...)
	}))
	w.AddSystem(nil)

	w.Update()
	require.Len(t, w.Systems(), 2)
	assert.Equal(t, []string{"push", "peek"}, order)
	require.Len(t, seen, 1)
	assert.Equal(t, EventGoalArrived, seen[0].Type)
	assert.Empty(t, w.Events().Peek(), "flushed after the tick")
	assert.Equal(t, uint64(1), w.Tick())
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	assert.Nil(t, q.Drain())
	q.Push(Event{Type: "a"})
	q.Push(Event{Type: "b"})
	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Type)
	assert.Empty(t, q.Peek())
}

func TestEntityString(t *testing.T) {
	e := makeEntity(3, 2)
	assert.Equal(t, "3v2", e.String())
	assert.True(t, e.Valid())
	assert.False(t, Entity(0).Valid())
}
