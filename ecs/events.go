package ecs

import "github.com/milk9111/shelter/common"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventGoalArrived     = "goal_arrived"
	EventGoalUnreachable = "goal_unreachable"
)

// GoalEvent is pushed when a navigation goal is dropped.
type GoalEvent struct {
	Entity Entity
	Target common.Tile
	At     common.Tile
}

// EventQueue is a FIFO cleared at the end of every world update.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the pending events without consuming them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
