// Package droid maps the ship section around a remotely controlled repair
// droid and measures routes through it.
//
// The droid is driven by a program that reads one movement command at a time
// and answers with a status code:
//
//	0 the droid hit a wall and did not move
//	1 the droid moved one step
//	2 the droid moved one step onto the oxygen system
package droid

import (
	"context"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"intcode"
)

type Direction int64

const (
	North Direction = 1
	South Direction = 2
	West  Direction = 3
	East  Direction = 4
)

var Directions = []Direction{North, South, West, East}

type Point struct {
	X, Y int
}

func (p Point) Move(d Direction) Point {
	switch d {
	case North:
		return Point{p.X, p.Y - 1}
	case South:
		return Point{p.X, p.Y + 1}
	case West:
		return Point{p.X - 1, p.Y}
	case East:
		return Point{p.X + 1, p.Y}
	default:
		panic(fmt.Errorf("unknown direction %d", d))
	}
}

type Section int

const (
	Start Section = iota
	Path
	Wall
	OxygenSystem
)

func (s Section) Open() bool {
	return s != Wall
}

type Map map[Point]Section

func (m Map) Oxygen() (Point, bool) {
	for p, s := range m {
		if s == OxygenSystem {
			return p, true
		}
	}
	return Point{}, false
}

type ReplyError struct {
	Reply int64
	At    Point
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("unexpected reply %d moving to %v", e.Reply, e.At)
}

type Droid struct {
	Position Point
	brain    intcode.Stepper
}

// move sends a fork of the droid one step towards d. The receiver is left
// untouched so that it can be moved in the other directions too.
func (d Droid) move(dir Direction) (Droid, Section, Point, error) {
	brain := d.brain.Fork()
	next := d.Position.Move(dir)
	if err := brain.Step(int64(dir)); err != nil {
		return Droid{}, Wall, next, errors.Wrapf(err, "move %v to %v", d.Position, next)
	}
	switch reply := brain.Output(); reply {
	case 0:
		return Droid{Position: d.Position, brain: brain}, Wall, next, nil
	case 1:
		return Droid{Position: next, brain: brain}, Path, next, nil
	case 2:
		return Droid{Position: next, brain: brain}, OxygenSystem, next, nil
	default:
		return Droid{}, Wall, next, &ReplyError{Reply: reply, At: next}
	}
}

type probe struct {
	from Droid
	dir  Direction
}

type sighting struct {
	droid   Droid
	section Section
	at      Point
}

// Explore maps every section reachable from the droid's starting point. Each
// round forks every droid on the frontier once per unknown neighbour and runs
// the forks concurrently.
func Explore(ctx context.Context, brain intcode.Stepper) (Map, error) {
	m := Map{{}: Start}
	frontier := []Droid{{brain: brain}}
	for len(frontier) > 0 {
		probes := []probe{}
		planned := map[Point]bool{}
		for _, d := range frontier {
			for _, dir := range Directions {
				p := d.Position.Move(dir)
				if _, known := m[p]; known || planned[p] {
					continue
				}
				planned[p] = true
				probes = append(probes, probe{d, dir})
			}
		}

		sightings := make([]sighting, len(probes))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, pr := range probes {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				next, section, at, err := pr.from.move(pr.dir)
				if err != nil {
					return err
				}
				sightings[i] = sighting{next, section, at}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		frontier = []Droid{}
		for _, s := range sightings {
			m[s.at] = s.section
			if s.section.Open() {
				frontier = append(frontier, s.droid)
			}
		}
	}
	return m, nil
}

var (
	ErrNoOxygen    = errors.New("oxygen system not found")
	ErrUnreachable = errors.New("oxygen system unreachable")
)

func distances(m Map, from Point) map[Point]int {
	dist := map[Point]int{from: 0}
	queue := []Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, dir := range Directions {
			next := p.Move(dir)
			s, known := m[next]
			if !known || !s.Open() {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[p] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// ShortestPath is the fewest movement commands from the start to the oxygen
// system.
func ShortestPath(m Map) (int, error) {
	oxygen, ok := m.Oxygen()
	if !ok {
		return 0, ErrNoOxygen
	}
	n, ok := distances(m, Point{})[oxygen]
	if !ok {
		return 0, ErrUnreachable
	}
	return n, nil
}

// FillTime is the number of minutes oxygen takes to spread from the oxygen
// system to every open section, one adjacent step per minute.
func FillTime(m Map) (int, error) {
	oxygen, ok := m.Oxygen()
	if !ok {
		return 0, ErrNoOxygen
	}
	minutes := 0
	for _, n := range distances(m, oxygen) {
		if n > minutes {
			minutes = n
		}
	}
	return minutes, nil
}
