// Package opponent picks moves for the computer side.
package opponent

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"goban/rules"
)

// Strategy names accepted by New.
const (
	None   = "none"
	First  = "first"
	Random = "random"
)

// BoardView is the read access a selector needs.
type BoardView interface {
	Size() int
	At(pos rules.Position) rules.Color
}

// Selector chooses the next computer move. ok is false when there is no
// empty cell left.
type Selector interface {
	Select(board BoardView) (pos rules.Position, ok bool)
}

// New returns the selector for a strategy name. None yields a nil selector,
// meaning both colors are played by people.
func New(name string) (Selector, error) {
	switch name {
	case None, "":
		return nil, nil
	case First:
		return FirstEmpty{}, nil
	case Random:
		return NewRandom(uint64(time.Now().UnixNano())), nil
	}
	return nil, fmt.Errorf("unknown opponent %q", name)
}

// FirstEmpty plays the first empty cell in reading order.
type FirstEmpty struct{}

func (FirstEmpty) Select(board BoardView) (rules.Position, bool) {
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pos := rules.Position{X: x, Y: y}
			if board.At(pos) == rules.Empty {
				return pos, true
			}
		}
	}
	return rules.Position{}, false
}

// RandomEmpty plays a uniformly chosen empty cell.
type RandomEmpty struct {
	rng *rand.Rand
}

// NewRandom returns a RandomEmpty selector seeded with seed.
func NewRandom(seed uint64) *RandomEmpty {
	return &RandomEmpty{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomEmpty) Select(board BoardView) (rules.Position, bool) {
	size := board.Size()
	var empty []rules.Position
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pos := rules.Position{X: x, Y: y}
			if board.At(pos) == rules.Empty {
				empty = append(empty, pos)
			}
		}
	}
	if len(empty) == 0 {
		return rules.Position{}, false
	}
	return empty[r.rng.Intn(len(empty))], true
}
