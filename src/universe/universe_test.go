package universe

import (
	"errors"
	"math"
	"sort"
	"testing"
)

var (
	engines = map[string]func(o *Options) Universe{
		"base": func(o *Options) Universe {
			return NewBaseUniverse(o)
		},
		"exact": NewExactUniverse,
	}

	blinker = Template{
		Name:        "blinker",
		Coordinates: [][]int{{4, 5, 1}, {5, 5, 1}, {6, 5, 1}},
		Depth:       1,
	}
	empty = Template{Name: "empty"}
)

//recorder collects the viewer callbacks
type recorder struct {
	refreshes   int
	generations []int
	densities   []float64
}

func (r *recorder) Refresh() { r.refreshes++ }
func (r *recorder) GenerationAdvanced(generation int, density float64) {
	r.generations = append(r.generations, generation)
	r.densities = append(r.densities, density)
}
func (r *recorder) Register(Universe) {}
func (r *recorder) Start()            {}

func newTestOptions(size int) *Options {
	o := DefaultUniverseOptions
	o.Size = size
	return &o
}

//newWithTemplate builds the universe and settles tmpl
func newWithTemplate(t testing.TB, engine string, size int, tmpl Template) Universe {
	u := engines[engine](newTestOptions(size))
	u.AddTemplate(tmpl)
	if err := u.SelectTemplate(tmpl.Name); err != nil {
		t.Fatal(err)
	}
	if err := u.Reset(0); err != nil {
		t.Fatal(err)
	}
	return u
}

func engineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}

func sameLattice(a *Lattice, b *Lattice) bool {
	if a.Size() != b.Size() {
		return false
	}
	for x := 1; x <= a.Size(); x++ {
		for y := 1; y <= a.Size(); y++ {
			for z := 1; z <= a.Size(); z++ {
				if a.Alive(x, y, z) != b.Alive(x, y, z) {
					return false
				}
			}
		}
	}
	return true
}

func TestUniverse_Blinker(t *testing.T) {
	for _, e := range engineNames() {
		t.Run(e, func(t *testing.T) {
			u := newWithTemplate(t, e, 10, blinker)
			l := u.Lattice()
			if l.Depth() != 1 {
				t.Fatalf("depth = %v, want 1", l.Depth())
			}

			u.Step()
			l = u.Lattice()
			for _, v := range [][]int{{5, 4, 1}, {5, 5, 1}, {5, 6, 1}} {
				if !l.Alive(v[0], v[1], v[2]) {
					t.Errorf("generation 1: %v must be alive", v)
				}
			}
			if l.Alive(4, 5, 1) || l.Alive(6, 5, 1) {
				t.Error("generation 1: the horizontal ends must be dead")
			}
			if st := u.Status(); st.LiveCells != 3 || st.Generation != 1 {
				t.Errorf("status = %+v", st)
			}

			u.Step()
			l = u.Lattice()
			for _, v := range blinker.Coordinates {
				if !l.Alive(v[0], v[1], v[2]) {
					t.Errorf("generation 2: %v must be alive", v)
				}
			}
			if l.LiveCells() != 3 {
				t.Errorf("live cells = %v, want 3", l.LiveCells())
			}
		})
	}
}

func TestUniverse_CellsFollowLattice(t *testing.T) {
	u := newWithTemplate(t, "base", 10, blinker)
	if c := u.Cell(4, 5, 1); c.State() != StateGrowing {
		t.Fatalf("settled cell is %v", c.State())
	}
	u.Step()
	if c := u.Cell(4, 5, 1); c.State() != StateShrinking || !c.Visible() {
		t.Errorf("dead end cell is %v", c.State())
	}
	if c := u.Cell(5, 5, 1); c.State() != StateStable {
		t.Errorf("surviving center is %v", c.State())
	}
	if c := u.Cell(5, 4, 1); c.State() != StateGrowing {
		t.Errorf("born cell is %v", c.State())
	}
	u.Step()
	if c := u.Cell(4, 5, 1); c.State() != StateGrowing {
		t.Errorf("revived cell is %v", c.State())
	}
	if c := u.Cell(5, 4, 1); c.State() != StateShrinking {
		t.Errorf("dying cell is %v", c.State())
	}
}

func TestUniverse_Density(t *testing.T) {
	u := newWithTemplate(t, "base", 10, blinker)
	r := &recorder{}
	u.RegisterViewer(r)
	u.Step()
	u.Step()
	if len(r.generations) != 2 || r.generations[0] != 1 || r.generations[1] != 2 {
		t.Fatalf("generations = %v", r.generations)
	}
	if math.Abs(r.densities[0]-0.3) > 1e-9 {
		t.Errorf("first density = %v, want 0.3", r.densities[0])
	}
	//the two dead ends are still shrinking when the second generation is reported
	if math.Abs(r.densities[1]-0.5) > 1e-9 {
		t.Errorf("second density = %v, want 0.5", r.densities[1])
	}
	if u.Status().Density != r.densities[1] {
		t.Errorf("status density = %v", u.Status().Density)
	}
	if r.refreshes < 40 {
		t.Errorf("%v refreshes for two generations", r.refreshes)
	}
}

func TestUniverse_NoSpontaneousBirth(t *testing.T) {
	for _, e := range engineNames() {
		u := newWithTemplate(t, e, 8, empty)
		for i := 0; i < 3; i++ {
			u.Step()
		}
		if n := u.Lattice().LiveCells(); n != 0 {
			t.Errorf("%v: %v cells born in an empty universe", e, n)
		}
	}
}

func TestUniverse_Deterministic(t *testing.T) {
	a := NewBaseUniverse(newTestOptions(20))
	b := NewBaseUniverse(newTestOptions(20))
	if a.Lattice().LiveCells() == 0 {
		t.Fatal("random template settled nothing")
	}
	for i := 0; i < 3; i++ {
		if !sameLattice(a.Lattice(), b.Lattice()) {
			t.Fatalf("generation %v differs for the same seed", i)
		}
		a.Step()
		b.Step()
	}

	if err := b.Reset(99); err != nil {
		t.Fatal(err)
	}
	if err := a.Reset(0); err != nil {
		t.Fatal(err)
	}
	if sameLattice(a.Lattice(), b.Lattice()) {
		t.Error("a different seed settled the same cells")
	}
	if b.Options().Seed != 99 || a.Options().Seed != DefSeed {
		t.Errorf("seeds = %v, %v", a.Options().Seed, b.Options().Seed)
	}
}

func TestUniverse_StartStop(t *testing.T) {
	u := newWithTemplate(t, "base", 10, blinker)
	for i := 0; i < 120; i++ {
		u.Frame()
	}
	if u.Status().Generation != 0 || u.Status().RunningMode != RunningStateManual {
		t.Fatal("a stopped universe must ignore frames")
	}

	u.Start()
	for i := 0; i < 59; i++ {
		u.Frame()
	}
	if u.Status().Generation != 0 {
		t.Fatal("generation advanced before the super-step")
	}
	u.Frame()
	if u.Status().Generation != 1 {
		t.Fatalf("generation = %v, want 1", u.Status().Generation)
	}

	for i := 0; i < 30; i++ {
		u.Frame()
	}
	u.Stop()
	for i := 0; i < 10; i++ {
		u.Frame()
	}
	u.Start()
	for i := 0; i < 30; i++ {
		u.Frame()
	}
	if u.Status().Generation != 2 {
		t.Errorf("the clock must resume where it stopped, generation = %v", u.Status().Generation)
	}
}

func TestUniverse_MaxGenerations(t *testing.T) {
	o := newTestOptions(10)
	o.MaxGenerations = 2
	u := NewBaseUniverse(o)
	u.Start()
	for i := 0; i < 1000; i++ {
		u.Frame()
	}
	if st := u.Status(); st.Generation != 2 || st.RunningMode != RunningStateFinished {
		t.Errorf("status = %+v", st)
	}
	u.Step()
	u.Start()
	if st := u.Status(); st.Generation != 2 || st.RunningMode != RunningStateFinished {
		t.Error("a finished universe must not continue")
	}
	if err := u.Reset(0); err != nil {
		t.Fatal(err)
	}
	if st := u.Status(); st.Generation != 0 || st.RunningMode != RunningStateManual {
		t.Errorf("reset status = %+v", st)
	}
}

func TestUniverse_Reset(t *testing.T) {
	u := newWithTemplate(t, "base", 10, blinker)
	u.Start()
	for i := 0; i < 150; i++ {
		u.Frame()
	}
	angles := u.Orientation().Angles
	if err := u.Reset(0); err != nil {
		t.Fatal(err)
	}
	st := u.Status()
	if st.Generation != 0 || st.RunningMode != RunningStateManual || st.LiveCells != 3 {
		t.Errorf("status after reset = %+v", st)
	}
	if !sameLattice(u.Lattice(), newWithTemplate(t, "base", 10, blinker).Lattice()) {
		t.Error("reset must settle the template again")
	}
	if u.Orientation().Angles != angles {
		t.Error("reset must keep the orientation")
	}
	if c := u.Cell(5, 4, 1); c.Visible() {
		t.Error("reset must discard the cells")
	}
}

func TestUniverse_Templates(t *testing.T) {
	u := NewBaseUniverse(newTestOptions(30))
	if err := u.SelectTemplate("nope"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("unknown template: %v", err)
	}
	if u.Options().Template != TemplateRandom {
		t.Error("a failed select must keep the template")
	}

	if err := u.SelectTemplate(TemplateCornerBeacons2D); err != nil {
		t.Fatal(err)
	}
	if u.Rules() != DefaultRuleSet {
		t.Error("the template must take effect with the next reset")
	}
	if err := u.Reset(0); err != nil {
		t.Fatal(err)
	}
	if u.Rules() != OscillatorRuleSet || u.Lattice().Depth() != 2 || u.Lattice().LiveCells() != 64 {
		t.Errorf("rules %v, depth %v, %v cells", u.Rules(), u.Lattice().Depth(), u.Lattice().LiveCells())
	}

	//the override stays in the configuration
	_ = u.SelectTemplate(TemplateTwoToad)
	_ = u.Reset(0)
	if u.Rules() != OscillatorRuleSet {
		t.Errorf("rules = %v after the override", u.Rules())
	}

	names := []string{}
	for _, tmpl := range u.Templates() {
		names = append(names, tmpl.Name)
	}
	if len(names) != len(BuiltinTemplates(30)) || names[0] != TemplateRandom {
		t.Errorf("templates = %v", names)
	}
}

func TestUniverse_SetRules(t *testing.T) {
	u := newWithTemplate(t, "base", 8, blinker)
	r := RuleSet{BirthMin: 2, BirthMax: 2, Overpopulation: 3, Underpopulation: 2}
	u.SetRules(r)
	if u.Rules() != DefaultRuleSet {
		t.Error("new rules must wait for the reset")
	}
	_ = u.Reset(0)
	if u.Rules() != r {
		t.Errorf("rules = %v, want %v", u.Rules(), r)
	}
}

func TestUniverse_Settle(t *testing.T) {
	u := newWithTemplate(t, "base", 10, blinker)
	u.Settle([][]int{{1, 1, 1}, {1, 1, 2}, {0, 3, 1}, {11, 3, 1}, {5, 5, 1}, {1}})
	if !u.Lattice().Alive(1, 1, 1) {
		t.Error("settled cell must be alive")
	}
	if u.Lattice().Alive(1, 1, 2) {
		t.Error("cell above the active layers must be skipped")
	}
	if st := u.Status(); st.LiveCells != 4 {
		t.Errorf("live cells = %v, want 4", st.LiveCells)
	}
}

func TestUniverse_ExactFallback(t *testing.T) {
	u := newWithTemplate(t, "base", 8, blinker)
	u.Step()
	if u.Status().ExactCount {
		t.Error("the default rules must use the early exit")
	}
	u.SetRules(RuleSet{BirthMin: 5, BirthMax: 8, Overpopulation: 4, Underpopulation: 2})
	_ = u.Reset(0)
	u.Step()
	if !u.Status().ExactCount {
		t.Error("birth above overpopulation must count exactly")
	}

	e := newWithTemplate(t, "exact", 8, blinker)
	e.Step()
	if !e.Status().ExactCount || e.Options().Advanced["engine"] != "exact" {
		t.Error("the exact engine must always count exactly")
	}
}

func TestUniverse_EnginesAgree(t *testing.T) {
	o := newTestOptions(16)
	o.Rules = RuleSet{BirthMin: 4, BirthMax: 5, Overpopulation: 6, Underpopulation: 3}
	o.Template = TemplateRandom
	a := NewBaseUniverse(o)
	b := NewExactUniverse(o)
	a.AddTemplate(Template{Name: "dense", Density: 0.2})
	b.AddTemplate(Template{Name: "dense", Density: 0.2})
	_ = a.SelectTemplate("dense")
	_ = b.SelectTemplate("dense")
	_ = a.Reset(0)
	_ = b.Reset(0)
	for i := 0; i < 4; i++ {
		a.Step()
		b.Step()
		if !sameLattice(a.Lattice(), b.Lattice()) {
			t.Fatalf("engines differ at generation %v", i+1)
		}
	}
}

func TestUniverse_BorderStaysDead(t *testing.T) {
	const size = 6
	everything := RuleSet{BirthMin: 0, BirthMax: 26, Overpopulation: 26, Underpopulation: 0}
	var full [][]int
	for x := 1; x <= size; x++ {
		for y := 1; y <= size; y++ {
			for z := 1; z <= size; z++ {
				full = append(full, []int{x, y, z})
			}
		}
	}
	for _, e := range engineNames() {
		u := newWithTemplate(t, e, size, Template{Name: "full", Coordinates: full, Rules: &everything})
		for i := 0; i < 3; i++ {
			u.Step()
			l := u.Lattice()
			for x := 0; x <= size+1; x++ {
				for y := 0; y <= size+1; y++ {
					for z := 0; z <= size+1; z++ {
						border := x == 0 || y == 0 || z == 0 || x == size+1 || y == size+1 || z == size+1
						if border && l.Alive(x, y, z) {
							t.Fatalf("%v generation %v: border cell %v,%v,%v is alive", e, i+1, x, y, z)
						}
					}
				}
			}
			if n := l.LiveCells(); n != size*size*size {
				t.Fatalf("%v generation %v: %v live cells, want %v", e, i+1, n, size*size*size)
			}
		}
	}
}

func TestUniverse_Orientation(t *testing.T) {
	u := newWithTemplate(t, "base", 10, blinker)
	u.SetRotation(true, false, true)
	u.Step()
	if a := u.Orientation().Angles; a != [3]float32{20, 0, 20} {
		t.Errorf("angles = %v", a)
	}
}

func TestUniverse_CellOutside(t *testing.T) {
	u := NewBaseUniverse(newTestOptions(5))
	defer func() {
		if recover() == nil {
			t.Error("a cell outside the interior must panic")
		}
	}()
	u.Cell(6, 1, 1)
}

func universeStep(u Universe, b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		_ = u.Reset(0)
		b.StartTimer()
		u.Step()
	}
}

func Benchmark_Step(b *testing.B) {
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			u := engines[e](newTestOptions(DefSize))
			u.AddTemplate(Template{Name: "dense", Density: 0.1})
			_ = u.SelectTemplate("dense")
			universeStep(u, b)
		})
	}
}

func Benchmark_Transition(b *testing.B) {
	u := NewBaseUniverse(newTestOptions(DefSize))
	u.AddTemplate(Template{Name: "dense", Density: 0.1})
	_ = u.SelectTemplate("dense")
	_ = u.Reset(0)
	count, _ := u.neighborCounter()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.transition(count)
	}
}
