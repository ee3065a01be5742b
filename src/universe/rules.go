package universe

import "fmt"

//RuleSet holds the four thresholds of the generalized 3D rule
type RuleSet struct {
	BirthMin        int //a dead cell is born with at least this many neighbors
	BirthMax        int //a dead cell is born with at most this many neighbors
	Overpopulation  int //a live cell dies with more than this many neighbors
	Underpopulation int //a live cell dies with fewer than this many neighbors
}

var (
	//DefaultRuleSet is the Life-like rule the application starts with
	DefaultRuleSet = RuleSet{BirthMin: 3, BirthMax: 3, Overpopulation: 3, Underpopulation: 2}
	//OscillatorRuleSet is used by the corner beacon presets
	OscillatorRuleSet = RuleSet{BirthMin: 3, BirthMax: 4, Overpopulation: 7, Underpopulation: 2}
)

//NextState maps the current cell state and its neighbor count to the next state
func (r RuleSet) NextState(alive bool, neighbors int) bool {
	if alive {
		return neighbors <= r.Overpopulation && neighbors >= r.Underpopulation
	}
	return neighbors >= r.BirthMin && neighbors <= r.BirthMax
}

//EarlyExitSafe reports whether the truncated neighbor count still gives exact birth decisions.
//Counting stops once the total exceeds Overpopulation, so any birth range above it would be misjudged.
func (r RuleSet) EarlyExitSafe() bool {
	return r.BirthMax <= r.Overpopulation
}

func (r RuleSet) String() string {
	return fmt.Sprintf("B%d-%d/O%d/U%d", r.BirthMin, r.BirthMax, r.Overpopulation, r.Underpopulation)
}
