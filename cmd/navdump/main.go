package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"text/tabwriter"

	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
	"github.com/milk9111/shelter/ecs/system"
	"github.com/milk9111/shelter/levels"
	"github.com/milk9111/shelter/navigation"
)

const (
	dt       = 1.0 / 60
	maxTicks = 60 * 120
)

func main() {
	levelName := flag.String("level", "shelter", "layout name in levels/ (basename, .yaml optional)")
	from := flag.String("from", "", "start tile as x,y; with -to, simulates a walk")
	to := flag.String("to", "", "goal tile as x,y")
	tables := flag.Bool("tables", false, "print the distance and next-hop tables")
	speed := flag.Float64("speed", 40, "walker speed in world units per second")
	flag.Parse()

	shelter, err := levels.LoadShelter(*levelName)
	if err != nil {
		log.Fatal(err)
	}
	finder := shelter.PathFinder()

	out := os.Stdout
	dumpGraph(out, finder)
	if *tables {
		dumpTables(out, finder)
	}

	if *from == "" || *to == "" {
		return
	}
	start, err := parseTile(*from)
	if err != nil {
		log.Fatalf("navdump: -from: %v", err)
	}
	goal, err := parseTile(*to)
	if err != nil {
		log.Fatalf("navdump: -to: %v", err)
	}
	fmt.Fprintf(out, "\nroute %v -> %v: %v\n", start, goal, finder.Route(start, goal))
	simulate(out, finder, start, goal, *speed)
}

func parseTile(s string) (common.Tile, error) {
	var t common.Tile
	if _, err := fmt.Sscanf(s, "%d,%d", &t.X, &t.Y); err != nil {
		return common.Tile{}, fmt.Errorf("want x,y, got %q: %w", s, err)
	}
	return t, nil
}

func dumpGraph(out io.Writer, finder *navigation.PathFinder) {
	part := finder.Partition()
	fmt.Fprintf(out, "box origin %v size %v, %d platforms, %d nodes\n",
		part.Origin(), part.Size(), len(part.Platforms()), finder.NodeCount())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "node\ttile\tplatform")
	for id := 0; id < finder.NodeCount(); id++ {
		t := finder.Node(id)
		fmt.Fprintf(tw, "%d\t%v\t%d\n", id, t, finder.Platform(t).ID)
	}
	tw.Flush()

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "edge\tkind\tweight")
	for _, e := range finder.Edges() {
		fmt.Fprintf(tw, "%d-%d\t%v\t%.2f\n", e.From, e.To, e.Kind, e.Weight)
	}
	tw.Flush()
}

func dumpTables(out io.Writer, finder *navigation.PathFinder) {
	n := finder.NodeCount()
	for _, table := range []struct {
		name string
		cell func(s, d int) string
	}{
		{"distance", func(s, d int) string {
			v := finder.Distance(s, d)
			if math.IsInf(v, 1) {
				return "inf"
			}
			return fmt.Sprintf("%.1f", v)
		}},
		{"next", func(s, d int) string { return fmt.Sprint(finder.NextHop(s, d)) }},
	} {
		fmt.Fprintf(out, "\n%s\n", table.name)
		tw := tabwriter.NewWriter(out, 0, 4, 1, ' ', tabwriter.AlignRight)
		for d := 0; d < n; d++ {
			fmt.Fprintf(tw, "\t%d", d)
		}
		fmt.Fprintln(tw, "\t")
		for s := 0; s < n; s++ {
			fmt.Fprintf(tw, "%d", s)
			for d := 0; d < n; d++ {
				fmt.Fprintf(tw, "\t%s", table.cell(s, d))
			}
			fmt.Fprintln(tw, "\t")
		}
		tw.Flush()
	}
}

// simulate walks one mover through the navigation and movement systems and
// prints every change of tile or intent.
func simulate(out io.Writer, finder *navigation.PathFinder, start, goal common.Tile, speed float64) {
	w := ecs.NewWorld()
	w.AddSystem(system.NewNavigationSystem(finder))
	w.AddSystem(system.NewMovementSystem(dt, finder.Stairs()))

	e := ecs.CreateEntity(w)
	tr := &component.Transform{}
	tr.SetPos(common.TileCenter(start))
	mv := &component.Moveable{Speed: speed}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		log.Fatal(err)
	}
	if err := ecs.Add(w, e, component.MoveableComponent.Kind(), mv); err != nil {
		log.Fatal(err)
	}
	if err := ecs.Add(w, e, component.MoveToComponent.Kind(), &component.MoveTo{Target: goal}); err != nil {
		log.Fatal(err)
	}

	var lastTile common.Tile
	var lastIntent navigation.Intent
	for tick := 0; tick < maxTicks; tick++ {
		w.Update()
		if tick == 0 || tr.Tile() != lastTile || mv.Intent != lastIntent {
			lastTile, lastIntent = tr.Tile(), mv.Intent
			fmt.Fprintf(out, "t=%6.2fs  %-9v intent %-5v %v\n", float64(tick+1)*dt, lastTile, lastIntent, mv.Mode)
		}
		if !ecs.Has(w, e, component.MoveToComponent.Kind()) {
			_, status := finder.Resolve(tr.Tile(), goal)
			fmt.Fprintf(out, "done after %.2fs: %v\n", float64(tick+1)*dt, status)
			return
		}
	}
	fmt.Fprintf(out, "gave up after %.0fs at %v\n", maxTicks*dt, tr.Tile())
}
