package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/navigation"
)

// routineDispatchScript is appended to every routine. Scripts define
// `pick := func(engine) { ... }` and call engine.move_to(x, y) to set a goal.
const routineDispatchScript = `
pick(__engine)
`

type routineScript struct {
	name     string
	compiled *tengo.Compiled
}

// routineContext is what a single pick call may see and change.
type routineContext struct {
	finder *navigation.PathFinder
	at     common.Tile
	picks  int

	goal    common.Tile
	hasGoal bool
}

func compileRoutine(name string, src []byte) (*routineScript, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + routineDispatchScript))
	if err := script.Add("__engine", map[string]any{}); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("routine %s: compile: %w", name, err)
	}
	return &routineScript{name: name, compiled: compiled}, nil
}

func (rs *routineScript) pick(ctx *routineContext) error {
	if rs == nil || rs.compiled == nil {
		return fmt.Errorf("nil routine script")
	}
	if err := rs.compiled.Set("__engine", buildRoutineEngine(ctx)); err != nil {
		return err
	}
	if err := rs.compiled.Run(); err != nil {
		return fmt.Errorf("routine %s: %w", rs.name, err)
	}
	return nil
}

func buildRoutineEngine(ctx *routineContext) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["move_to"] = &tengo.UserFunction{Name: "move_to", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToInt(args[0])
		y, okY := tengo.ToInt(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		ctx.goal = common.Tile{X: x, Y: y}
		ctx.hasGoal = true
		return tengo.TrueValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return tileObject(ctx.at), nil
	}}

	values["picks"] = &tengo.UserFunction{Name: "picks", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ctx.picks)}, nil
	}}

	// platforms lists the walkable platforms as maps of absolute tile bounds:
	// {left, right, y}, right exclusive, y the walking row.
	values["platforms"] = &tengo.UserFunction{Name: "platforms", Value: func(args ...tengo.Object) (tengo.Object, error) {
		out := &tengo.Array{}
		if ctx.finder == nil {
			return out, nil
		}
		origin := ctx.finder.Partition().Origin()
		for _, pl := range ctx.finder.Partition().Platforms() {
			if !pl.Walkable || pl.Width() <= 0 {
				continue
			}
			out.Value = append(out.Value, &tengo.ImmutableMap{Value: map[string]tengo.Object{
				"left":  &tengo.Int{Value: int64(pl.Left + origin.X)},
				"right": &tengo.Int{Value: int64(pl.Right + origin.X)},
				"y":     &tengo.Int{Value: int64(pl.Bottom + origin.Y)},
			}})
		}
		return out, nil
	}}

	values["reachable"] = &tengo.UserFunction{Name: "reachable", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.finder == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToInt(args[0])
		y, okY := tengo.ToInt(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		if _, status := ctx.finder.Resolve(ctx.at, common.Tile{X: x, Y: y}); status == navigation.Unreachable {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("routine: %s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func tileObject(t common.Tile) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Int{Value: int64(t.X)}, &tengo.Int{Value: int64(t.Y)}}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
