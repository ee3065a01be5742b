package universe

type Universe interface {
	Status() Status
	Options() Options
	Rules() RuleSet
	SetRules(r RuleSet)
	Lattice() *Lattice
	Cell(x int, y int, z int) *Cell
	Orientation() Orientation
	SetRotation(x bool, y bool, z bool)
	AddTemplate(tmpl Template)
	Templates() []Template
	SelectTemplate(name string) error
	Settle(vc [][]int)
	RegisterViewer(v Viewer)
	Start()
	Stop()
	Frame()
	Step()
	Reset(seed int64) error
}
