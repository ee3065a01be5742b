package universe

import (
	"errors"
	"math/rand/v2"
)

//ErrUnknownTemplate is returned when a template name is not registered
var ErrUnknownTemplate = errors.New("unknown template")

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string   //template name
	Descr       string   //template descr
	Coordinates [][]int  //array of [x,y,z] coordinates
	Rules       *RuleSet //rules override, nil keeps the configured rules
	Depth       int      //number of active layers, 0 means the whole cube
	Density     float64  //fraction of cells settled at random, 0 disables random seeding
}

//template names
const (
	TemplateRandom          = "random"
	TemplateCrossSection    = "crossSection"
	TemplateCornerBeacons2D = "cornerBeacons2D"
	TemplateCornerBeacons3D = "cornerBeacons3D"
	TemplateTwoToad         = "twoToad"
	TemplatePentadecathlon  = "pentadecathlon"
)

const randomDensity = 0.01

//BuiltinTemplates returns the preset patterns laid out for a cube of the given size
func BuiltinTemplates(size int) []Template {
	oscillator := OscillatorRuleSet
	return []Template{
		{
			Name:    TemplateRandom,
			Descr:   "1% of the cells alive at random",
			Density: randomDensity,
		},
		{
			Name:        TemplateCrossSection,
			Descr:       "cross section with a pulsar",
			Coordinates: pulsar(size/2, size/2, 1),
			Depth:       1,
		},
		{
			Name:        TemplateCornerBeacons2D,
			Descr:       "oscillating pokeball: beacons in each corner of two layers",
			Coordinates: cornerBeacons(size, false),
			Rules:       &oscillator,
			Depth:       2,
		},
		{
			Name:        TemplateCornerBeacons3D,
			Descr:       "symmetric maze cube: beacons in opposite corners of the cube",
			Coordinates: cornerBeacons(size, true),
			Rules:       &oscillator,
		},
		{
			Name:        TemplateTwoToad,
			Descr:       "two toads on the bottom layer",
			Coordinates: twoToad(size),
		},
		{
			Name:        TemplatePentadecathlon,
			Descr:       "pentadecathlon mirrored on the bottom and top layers",
			Coordinates: append(pentadecathlon(size/2, 1), pentadecathlon(size/2, size)...),
		},
	}
}

//settleRandom picks every active cell with the given probability
func settleRandom(l *Lattice, rng *rand.Rand, density float64) [][]int {
	var vc [][]int
	for x := 1; x <= l.Size(); x++ {
		for y := 1; y <= l.Size(); y++ {
			for z := 1; z <= l.Depth(); z++ {
				if rng.Float64() < density {
					vc = append(vc, []int{x, y, z})
				}
			}
		}
	}
	return vc
}

//mirror reflects a coordinate across the middle of the cube
func mirror(size int, v int) int {
	return size + 1 - v
}

//pulsar is the period 3 oscillator centered on cx, cy
func pulsar(cx int, cy int, z int) [][]int {
	var vc [][]int
	for _, line := range []int{-6, -1, 1, 6} {
		for _, seg := range []int{-4, -3, -2, 2, 3, 4} {
			vc = append(vc, []int{cx + line, cy + seg, z}, []int{cx + seg, cy + line, z})
		}
	}
	return vc
}

//beacon is two diagonal blocks touching at a corner, anchored at the origin of the cube
var beacon = [][2]int{
	{1, 1}, {1, 2}, {2, 1}, {2, 2},
	{3, 3}, {3, 4}, {4, 3}, {4, 4},
}

//cornerBeacons places a beacon in each corner of the two lowest layers
//with skew the corners with exactly one mirrored axis are moved to the two top layers
func cornerBeacons(size int, skew bool) [][]int {
	var vc [][]int
	for _, layer := range []int{1, 2} {
		for _, mx := range []bool{false, true} {
			for _, my := range []bool{false, true} {
				z := layer
				if skew && mx != my {
					z = mirror(size, layer)
				}
				for _, b := range beacon {
					x, y := b[0], b[1]
					if mx {
						x = mirror(size, x)
					}
					if my {
						y = mirror(size, y)
					}
					vc = append(vc, []int{x, y, z})
				}
			}
		}
	}
	return vc
}

//twoToad places a toad against each side of the bottom layer
func twoToad(size int) [][]int {
	row := size/2 - 1
	var vc [][]int
	for _, x := range []int{2, 3, 4} {
		vc = append(vc, []int{x, row, 1}, []int{mirror(size, x), row, 1})
	}
	for _, x := range []int{1, 2, 3} {
		vc = append(vc, []int{x, row + 1, 1}, []int{mirror(size, x), row + 1, 1})
	}
	return vc
}

//pentadecathlon is the period 15 oscillator laid along the x axis around c
func pentadecathlon(c int, z int) [][]int {
	vc := [][]int{
		{c - 2, c - 2, z}, {c + 3, c - 2, z},
		{c - 2, c, z}, {c + 3, c, z},
	}
	for _, dx := range []int{-4, -3, -1, 0, 1, 2, 4, 5} {
		vc = append(vc, []int{c + dx, c - 1, z})
	}
	return vc
}
