package driver

import (
	"lifecube/src/universe"
	"time"
)

/*
	Driver is the host side of the universe: it owns the universe on a single goroutine,
	calls Frame on every tick and runs the commands sent by the views in between the frames.
	Nothing else may touch the universe while the driver is running.
*/
type Driver struct {
	u         universe.Universe
	interval  time.Duration
	controlCh chan func()
	closeCh   chan bool
	doneCh    chan bool
}

//New creates the driver and starts the main loop
//interval is the time between two frames, a value <= 0 uses universe.DefFrameInterval
func New(u universe.Universe, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = universe.DefFrameInterval
	}
	d := &Driver{
		u:         u,
		interval:  interval,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		doneCh:    make(chan bool),
	}
	go d.mainLoop()
	return d
}

//Do sends the command to the main loop, returns immediately
func (d *Driver) Do(cmd func(u universe.Universe)) {
	d.controlCh <- func() { cmd(d.u) }
}

//Close stops the main loop and waits for it to return
func (d *Driver) Close() {
	d.closeCh <- true
	<-d.doneCh
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command or frame tick and executes
func (d *Driver) mainLoop() {
	ticker := time.NewTicker(d.interval)
	defer func() {
		ticker.Stop()
		close(d.doneCh)
	}()
	for {
		select {
		case cmd := <-d.controlCh:
			cmd()
		case <-ticker.C:
			d.u.Frame()
		case <-d.closeCh:
			return
		}
	}
}
