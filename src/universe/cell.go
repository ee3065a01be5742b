package universe

import "image/color"

//LifeState is the animation state of a cell, independent from its logical state on the lattice
type LifeState uint8

const (
	StateDead LifeState = iota
	StateGrowing
	StateStable
	StateShrinking
)

//cell animation bounds
const (
	MinCellSize = 2.0
	MaxCellSize = 14.0
	SizeStep    = 0.6

	colorMax        = 250
	growColorStep   = 25
	shrinkColorStep = 10
)

var lifeStateNames = map[LifeState]string{
	StateDead:      "dead",
	StateGrowing:   "growing",
	StateStable:    "stable",
	StateShrinking: "shrinking",
}

func (s LifeState) String() string {
	return lifeStateNames[s]
}

/*
	Cell animates the growth and decay of one lattice point.
	The lattice decides who lives; the cell only follows that signal once per generation
	and interpolates its size and color on every animation tick in between.
	A cell that the rule has already killed keeps shrinking visibly for one more generation.
*/
type Cell struct {
	state LifeState
	size  float64
	red   int
	green int
}

//NewCell returns an invisible dead cell
func NewCell() Cell {
	return Cell{state: StateDead, size: MinCellSize, red: colorMax, green: colorMax}
}

//SetAlive delivers the logical state computed for the new generation
func (c *Cell) SetAlive(alive bool) {
	if alive {
		switch c.state {
		case StateDead:
			c.state = StateGrowing
			c.size = MinCellSize
			c.red, c.green = colorMax, colorMax
		case StateShrinking:
			c.state = StateGrowing
			c.red, c.green = colorMax, colorMax
		case StateGrowing:
			c.state = StateStable
			c.size = MaxCellSize
			c.red, c.green = 0, colorMax
		}
		return
	}
	switch c.state {
	case StateGrowing, StateStable:
		c.state = StateShrinking
	case StateShrinking:
		c.state = StateDead
	}
}

//Tick advances the animation by one sub-step, stable and dead cells are not affected
//the color moves in its own smaller steps so it trails the size change
func (c *Cell) Tick() {
	switch c.state {
	case StateGrowing:
		if c.size < MaxCellSize {
			c.size += SizeStep
			if c.size > MaxCellSize {
				c.size = MaxCellSize
			}
		}
		if c.size >= MaxCellSize-2 {
			if c.red >= growColorStep {
				c.red -= growColorStep
			}
			if c.green <= colorMax-growColorStep {
				c.green += growColorStep
			}
		}
	case StateShrinking:
		if c.size > MinCellSize {
			c.size -= SizeStep
			if c.size < MinCellSize {
				c.size = MinCellSize
			}
		}
		if c.red <= colorMax-shrinkColorStep {
			c.red += shrinkColorStep
		}
		if c.green >= shrinkColorStep {
			c.green -= shrinkColorStep
		}
	}
}

//State returns the current animation state
func (c *Cell) State() LifeState {
	return c.state
}

//Alive reports the cell's own notion of being alive, which includes shrinking cells
func (c *Cell) Alive() bool {
	return c.state != StateDead
}

//Visible reports whether a renderer should draw the cell
func (c *Cell) Visible() bool {
	return c.state != StateDead
}

//Size returns the edge length of the cell's box
func (c *Cell) Size() float64 {
	return c.size
}

//Color returns the current red-green blend of the cell
func (c *Cell) Color() color.RGBA {
	return color.RGBA{R: uint8(c.red), G: uint8(c.green), B: 0, A: 255}
}
