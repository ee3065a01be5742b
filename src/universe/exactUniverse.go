package universe

/*
	Exact Universe implementation
	Every neighbor is counted for every cell, the early exit of the base engine is never used.
	Slower, but the count is correct for any rules, including a birth range above the overpopulation threshold.
*/
type ExactUniverse struct {
	*BaseUniverse
}

func NewExactUniverse(o *Options) Universe {
	eu := ExactUniverse{BaseUniverse: NewBaseUniverse(o)}
	//redefine the neighborCounter
	eu.BaseUniverse.neighborCounter = eu.neighborCounter
	eu.options.Advanced["engine"] = "exact"
	return &eu
}

func (eu *ExactUniverse) neighborCounter() (func(x int, y int, z int) int, bool) {
	return eu.lattice.CountAllNeighbors, true
}
