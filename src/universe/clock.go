package universe

//Clock turns host frames into animation sub-steps and generation super-steps
//the cadence is counted in frames, not in elapsed time, so the animation speed follows the host frame rate
type Clock struct {
	SubStride   int
	SuperStride int
	frame       int
}

//NewClock creates the clock, super must be a multiple of sub and is rounded up if it is not
func NewClock(sub int, super int) *Clock {
	if sub <= 0 {
		sub = DefSubStride
	}
	if super <= 0 {
		super = DefSuperStride
	}
	if super%sub != 0 {
		super = (super/sub + 1) * sub
	}
	return &Clock{SubStride: sub, SuperStride: super}
}

//Advance counts one frame and reports which steps are due on it
//the frame counter restarts from zero after every super-step
func (c *Clock) Advance() (subStep bool, superStep bool) {
	c.frame++
	subStep = c.frame%c.SubStride == 0
	if c.frame >= c.SuperStride {
		superStep = true
		c.frame = 0
	}
	return
}

//Frame returns the frames counted since the last super-step
func (c *Clock) Frame() int {
	return c.frame
}

//Reset restarts the count
func (c *Clock) Reset() {
	c.frame = 0
}
