package view

import (
	"fmt"
	"github.com/logrusorgru/aurora"
	"io"
	"lifecube/src/universe"
	"sort"
	"time"
)

//ConsoleOut prints the progress of a headless run
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	every     int
	startTime time.Time
	finished  bool
}

//NewConsoleOut creates the printer, a line is written every `every` generations
func NewConsoleOut(w io.Writer, every int) *ConsoleOut {
	if every <= 0 {
		every = 1
	}
	return &ConsoleOut{w: w, every: every}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.RunningMode != universe.RunningStateFinished || c.finished {
		return
	}
	c.finished = true
	totalTime := time.Since(c.startTime).Round(time.Millisecond)
	resultData := map[string]interface{}{
		"Last generation": st.Generation,
		"Total time":      totalTime,
		"Live cells":      st.LiveCells,
		"Density":         fmt.Sprintf("%.2f%%", st.Density),
	}
	_, _ = fmt.Fprintln(c.w, aurora.Red("\nFinished:"))
	c.printHashData(resultData)
}

func (c *ConsoleOut) GenerationAdvanced(generation int, density float64) {
	if generation%c.every != 0 {
		return
	}
	st := c.u.Status()
	_, _ = fmt.Fprintf(c.w, "  %s %4d  %s %6.2f%%  %s %v\n",
		aurora.Green("Generation:"), generation,
		aurora.Green("Density:"), density,
		aurora.Green("Live cells:"), st.LiveCells)
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v x %v\n", o.Size, o.Size, o.Size)
	_, _ = fmt.Fprintf(c.w, "  Rules: %v\n", u.Rules())
	_, _ = fmt.Fprintf(c.w, "  Template: %v\n", o.Template)
	_, _ = fmt.Fprintf(c.w, "  Cadence: sub-step every %v frames, generation every %v frames\n", o.SubStride, o.SuperStride)
	_, _ = fmt.Fprintf(c.w, "  Max generations: %v\n", o.MaxGenerations)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	c.finished = false
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
