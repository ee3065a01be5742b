package universe

import (
	"fmt"
	"math/rand/v2"
	"time"
)

//Options represents the Universe's configurable options
type Options struct {
	Size           int
	Rules          RuleSet
	Template       string
	Seed           int64
	SubStride      int
	SuperStride    int
	MaxGenerations int
	Interval       time.Duration          //frame interval of the host driving the universe
	Advanced       map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningState
	LiveCells     int
	Density       float64 //percentage of living cells reported with the last generation
	ExactCount    bool    //the last generation was computed without the early exit
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	//Refresh is called after every animation sub-step and whenever the state changes outside the clock
	Refresh()
	//GenerationAdvanced is called once per super-step before the new generation is computed
	GenerationAdvanced(generation int, density float64)
	Register(u Universe)
	Start()
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSize           = 30
	DefSubStride      = 3
	DefSuperStride    = 60
	DefFrameInterval  = time.Second / 60
	DefMaxGenerations = 0
	DefSeed           = 1
)

const (
	RunningStateManual   = RunningState(0x0)
	RunningStateRun      = RunningState(0x1)
	RunningStateFinished = RunningState(0x2)
)

var runningStateNames = map[RunningState]string{
	RunningStateManual:   "stopped",
	RunningStateRun:      "running",
	RunningStateFinished: "finished",
}

func (s RunningState) String() string {
	return runningStateNames[s]
}

var DefaultUniverseOptions = Options{
	Size:           DefSize,
	Rules:          DefaultRuleSet,
	Template:       TemplateRandom,
	Seed:           DefSeed,
	SubStride:      DefSubStride,
	SuperStride:    DefSuperStride,
	MaxGenerations: DefMaxGenerations,
	Interval:       DefFrameInterval,
}

/*
	BaseUniverse is the base universe's engine, implements Universe interface.
	It is driven by the host: Frame must be called once per rendered frame and
	everything, including the viewer callbacks, happens synchronously inside that call.
	The universe is not safe for concurrent use, the host serializes every call.
	Other engines can be built by redefining neighborCounter.
*/
type BaseUniverse struct {
	options     Options
	state       Status
	rules       RuleSet
	lattice     *Lattice
	cells       []Cell
	clock       *Clock
	orientation Orientation
	rng         *rand.Rand
	views       []Viewer
	templates   map[string]Template
	order       []string
	aliveCount  int

	//neighborCounter returns the counter for the next generation and whether it is exact
	neighborCounter func() (count func(x int, y int, z int) int, exact bool)
}

//NewBaseUniverse creates the BaseUniverse instance, builds the lattice and settles the selected template
func NewBaseUniverse(o *Options) *BaseUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	opts := *o
	opts.Advanced = map[string]interface{}{}
	for k, v := range o.Advanced {
		opts.Advanced[k] = v
	}
	opts.Advanced["engine"] = "base"
	if opts.Size <= 0 {
		opts.Size = DefSize
	}

	u := BaseUniverse{
		options:     opts,
		orientation: newOrientation(opts.Size),
		templates:   map[string]Template{},
	}
	//neighborCounter can be implemented by successor
	u.neighborCounter = u.earlyExitCounter
	for _, tmpl := range BuiltinTemplates(opts.Size) {
		u.AddTemplate(tmpl)
	}
	u.build()
	return &u
}

//AddTemplate adds the seeding template to the internal storage, a template with the same name is replaced
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	if _, ok := u.templates[tmpl.Name]; !ok {
		u.order = append(u.order, tmpl.Name)
	}
	u.templates[tmpl.Name] = tmpl
}

//Templates returns the known templates in registration order
func (u *BaseUniverse) Templates() []Template {
	list := make([]Template, 0, len(u.order))
	for _, name := range u.order {
		list = append(list, u.templates[name])
	}
	return list
}

//SelectTemplate chooses the template settled by the next Reset
func (u *BaseUniverse) SelectTemplate(name string) error {
	if _, ok := u.templates[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	u.options.Template = name
	return nil
}

//Settle settles the universe with data
//vc - array of x,y,z coordinates, the coordinates outside the active area are skipped
func (u *BaseUniverse) Settle(vc [][]int) {
	u.settle(vc)
	u.state.LiveCells = u.lattice.LiveCells()
	u.refreshView()
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
	v.Register(u)
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	return u.state
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Rules returns the rules the current generation is computed with
func (u *BaseUniverse) Rules() RuleSet {
	return u.rules
}

//SetRules stores the rules to use from the next Reset on
func (u *BaseUniverse) SetRules(r RuleSet) {
	u.options.Rules = r
}

//Lattice returns the logical state, callers must not modify it
func (u *BaseUniverse) Lattice() *Lattice {
	return u.lattice
}

//Cell returns the animated cell at the interior point x, y, z
func (u *BaseUniverse) Cell(x int, y int, z int) *Cell {
	n := u.options.Size
	if x < 1 || x > n || y < 1 || y > n || z < 1 || z > n {
		panic(fmt.Sprintf("universe: cell %d,%d,%d outside the %d^3 interior", x, y, z, n))
	}
	return &u.cells[u.cellIndex(x, y, z)]
}

//Orientation returns the rotation state to forward to a renderer
func (u *BaseUniverse) Orientation() Orientation {
	return u.orientation
}

//SetRotation enables or disables the auto rotation per axis
func (u *BaseUniverse) SetRotation(x bool, y bool, z bool) {
	u.orientation.Rotate = [3]bool{x, y, z}
}

//Start arms the clock, Frame calls advance the simulation from now on
func (u *BaseUniverse) Start() {
	if u.state.RunningMode == RunningStateManual {
		u.state.RunningMode = RunningStateRun
		u.refreshView()
	}
}

//Stop disarms the clock, the lattice and the cells keep their state
func (u *BaseUniverse) Stop() {
	if u.state.RunningMode == RunningStateRun {
		u.state.RunningMode = RunningStateManual
		u.refreshView()
	}
}

//Frame is the per-frame callback of the host, it does nothing while the universe is stopped
func (u *BaseUniverse) Frame() {
	if u.state.RunningMode != RunningStateRun {
		return
	}
	u.frame()
}

//Step runs frames until the next generation is computed, regardless of the running mode
func (u *BaseUniverse) Step() {
	if u.state.RunningMode == RunningStateFinished {
		return
	}
	for !u.frame() {
	}
}

//Reset discards the lattice and all cells and settles the selected template again
//seed replaces the random seed unless it is 0
//the universe is stopped after the reset
func (u *BaseUniverse) Reset(seed int64) error {
	if _, ok := u.templates[u.options.Template]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, u.options.Template)
	}
	if seed != 0 {
		u.options.Seed = seed
	}
	u.build()
	u.refreshView()
	return nil
}

//build allocates a fresh lattice and cells and settles the selected template
func (u *BaseUniverse) build() {
	tmpl, ok := u.templates[u.options.Template]
	if ok && tmpl.Rules != nil {
		u.options.Rules = *tmpl.Rules
	}
	u.rules = u.options.Rules
	u.lattice = NewLattice(u.options.Size, tmpl.Depth)
	u.options.Advanced["depth"] = u.lattice.Depth()

	n := u.lattice.Size()
	u.cells = make([]Cell, n*n*n)
	for i := range u.cells {
		u.cells[i] = NewCell()
	}
	u.clock = NewClock(u.options.SubStride, u.options.SuperStride)
	u.options.SubStride, u.options.SuperStride = u.clock.SubStride, u.clock.SuperStride
	u.rng = rand.New(rand.NewPCG(uint64(u.options.Seed), 0))
	u.state = Status{RunningMode: RunningStateManual}
	u.aliveCount = 0

	if ok {
		u.settle(tmpl.Coordinates)
		if tmpl.Density > 0 {
			u.settle(settleRandom(u.lattice, u.rng, tmpl.Density))
		}
	}
	u.state.LiveCells = u.lattice.LiveCells()
}

//settle places live cells at the coordinates, a cell which is already alive is left untouched
func (u *BaseUniverse) settle(vc [][]int) {
	for _, v := range vc {
		if len(v) < 3 {
			continue
		}
		x, y, z := v[0], v[1], v[2]
		if !u.lattice.Active(x, y, z) || u.lattice.Alive(x, y, z) {
			continue
		}
		u.lattice.Set(x, y, z, true)
		u.cells[u.cellIndex(x, y, z)].SetAlive(true)
	}
}

//frame counts one frame on the clock and runs the due steps
//returns true if a new generation was computed
func (u *BaseUniverse) frame() bool {
	sub, super := u.clock.Advance()
	if sub {
		u.subStep()
	}
	if super {
		u.superStep()
		return true
	}
	return false
}

//subStep ticks the animation of every active cell and counts the cells alive for the density
func (u *BaseUniverse) subStep() {
	alive := 0
	u.walkActive(func(x int, y int, z int) {
		c := &u.cells[u.cellIndex(x, y, z)]
		c.Tick()
		if c.Alive() {
			alive++
		}
	})
	u.aliveCount = alive
	u.orientation.advance()
	u.refreshView()
}

//superStep reports the generation and computes the next one
func (u *BaseUniverse) superStep() {
	u.state.Generation++
	u.state.Density = float64(u.aliveCount) / float64(u.lattice.Interior()) * 100
	for _, v := range u.views {
		v.GenerationAdvanced(u.state.Generation, u.state.Density)
	}

	start := time.Now()
	count, exact := u.neighborCounter()
	live := u.transition(count)
	u.lattice.Swap()
	u.walkActive(func(x int, y int, z int) {
		u.cells[u.cellIndex(x, y, z)].SetAlive(u.lattice.Alive(x, y, z))
	})
	u.state.LiveCells = live
	u.state.ExactCount = exact
	u.state.IterationTime = time.Since(start)

	if limit := u.options.MaxGenerations; limit > 0 && u.state.Generation >= limit {
		u.state.RunningMode = RunningStateFinished
	}
	u.refreshView()
}

//transition writes the next state of every active cell into the next buffer
//only the current buffer is read, so no cell sees a neighbor of the same generation
func (u *BaseUniverse) transition(count func(x int, y int, z int) int) int {
	l := u.lattice
	live := 0
	u.walkActive(func(x int, y int, z int) {
		i := l.index(x, y, z)
		next := u.rules.NextState(l.cur[i], count(x, y, z))
		l.nxt[i] = next
		if next {
			live++
		}
	})
	return live
}

//earlyExitCounter counts up to the overpopulation threshold
//it falls back to the exact count for rules where the birth range reaches above that threshold
func (u *BaseUniverse) earlyExitCounter() (func(x int, y int, z int) int, bool) {
	if !u.rules.EarlyExitSafe() {
		return u.lattice.CountAllNeighbors, true
	}
	limit := u.rules.Overpopulation
	l := u.lattice
	return func(x int, y int, z int) int {
		return l.CountNeighbors(x, y, z, limit)
	}, false
}

//walkActive calls cb for every interior cell of the active layers
func (u *BaseUniverse) walkActive(cb func(x int, y int, z int)) {
	n, depth := u.lattice.Size(), u.lattice.Depth()
	for x := 1; x <= n; x++ {
		for y := 1; y <= n; y++ {
			for z := 1; z <= depth; z++ {
				cb(x, y, z)
			}
		}
	}
}

func (u *BaseUniverse) cellIndex(x int, y int, z int) int {
	n := u.options.Size
	return ((x-1)*n+(y-1))*n + (z - 1)
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
