package universe

import "fmt"

/*
	Lattice is a cube of Size^3 usable cells stored in a (Size+2)^3 buffer.
	Index 0 and Size+1 on every axis form a border which is always dead,
	so the neighbor lookups never need bounds checks.
	Two buffers are kept: the transition pass reads only cur and writes only nxt,
	then Swap makes the freshly computed generation current.
*/
type Lattice struct {
	size  int
	depth int
	side  int
	cur   []bool
	nxt   []bool
}

//NewLattice allocates an empty lattice
//depth limits the active layers to z in [1, depth], a value outside [1, size] means all layers
func NewLattice(size int, depth int) *Lattice {
	if size <= 0 {
		size = DefSize
	}
	if depth <= 0 || depth > size {
		depth = size
	}
	side := size + 2
	return &Lattice{
		size:  size,
		depth: depth,
		side:  side,
		cur:   make([]bool, side*side*side),
		nxt:   make([]bool, side*side*side),
	}
}

//Size returns the edge length of the usable cube
func (l *Lattice) Size() int {
	return l.size
}

//Depth returns the number of active layers
func (l *Lattice) Depth() int {
	return l.depth
}

//Interior returns the total number of usable cells
func (l *Lattice) Interior() int {
	return l.size * l.size * l.size
}

//Alive returns the current state at x, y, z, border coordinates are allowed and always dead
func (l *Lattice) Alive(x int, y int, z int) bool {
	return l.cur[l.index(x, y, z)]
}

//Next returns the state at x, y, z of the buffer the next transition pass writes into
//after Swap it still holds the previous generation until that pass runs
func (l *Lattice) Next(x int, y int, z int) bool {
	return l.nxt[l.index(x, y, z)]
}

//Set writes the current state of an active interior cell
//returns false if the coordinates are on the border or outside the active layers
func (l *Lattice) Set(x int, y int, z int, alive bool) bool {
	if !l.Active(x, y, z) {
		return false
	}
	l.cur[l.index(x, y, z)] = alive
	return true
}

//Active reports whether x, y, z is an interior cell inside the active layers
func (l *Lattice) Active(x int, y int, z int) bool {
	return x >= 1 && x <= l.size && y >= 1 && y <= l.size && z >= 1 && z <= l.depth
}

//LiveCells counts the live cells of the current generation
func (l *Lattice) LiveCells() int {
	n := 0
	for _, alive := range l.cur {
		if alive {
			n++
		}
	}
	return n
}

//Clear kills every cell in both buffers
func (l *Lattice) Clear() {
	for i := range l.cur {
		l.cur[i] = false
		l.nxt[i] = false
	}
}

//Swap makes the next generation current
//every active cell of nxt is rewritten by each pass, so the stale buffer is never read
func (l *Lattice) Swap() {
	l.cur, l.nxt = l.nxt, l.cur
}

//CountNeighbors counts the live cells of the 26-neighborhood with the early exit optimization:
//counting stops as soon as the running total exceeds limit.
//The result is exact while it is <= limit, above limit it is only known to be greater.
func (l *Lattice) CountNeighbors(x int, y int, z int, limit int) int {
	l.mustBeInterior(x, y, z)
	n := l.countRing(x, y, z, limit)
	if n <= limit {
		n += l.countRing(x, y, z-1, limit)
	}
	if n <= limit {
		n += l.countRing(x, y, z+1, limit)
	}
	if n <= limit {
		if l.cur[l.index(x, y, z+1)] {
			n++
		}
		if l.cur[l.index(x, y, z-1)] {
			n++
		}
	}
	return n
}

//CountAllNeighbors returns the exact number of live cells in the 26-neighborhood
func (l *Lattice) CountAllNeighbors(x int, y int, z int) int {
	l.mustBeInterior(x, y, z)
	n := 0
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if l.cur[l.index(x+dx, y+dy, z+dz)] {
					n++
				}
			}
		}
	}
	return n
}

//countRing counts the 2D Moore ring around x, y on layer z
//the ring count itself stops growing once it exceeds limit
func (l *Lattice) countRing(x int, y int, z int, limit int) int {
	n := 0
	for _, d := range ringOffsets {
		if n > limit {
			break
		}
		if l.cur[l.index(x+d[0], y+d[1], z)] {
			n++
		}
	}
	return n
}

var ringOffsets = [8][2]int{
	{-1, 0}, {-1, -1}, {-1, 1},
	{1, 0}, {1, -1}, {1, 1},
	{0, -1}, {0, 1},
}

func (l *Lattice) index(x int, y int, z int) int {
	return (x*l.side+y)*l.side + z
}

func (l *Lattice) mustBeInterior(x int, y int, z int) {
	if x < 1 || x > l.size || y < 1 || y > l.size || z < 1 || z > l.size {
		panic(fmt.Sprintf("universe: neighbor count at %d,%d,%d outside the %d^3 interior", x, y, z, l.size))
	}
}
