package main

import (
	"fmt"
	"github.com/integrii/flaggy"
	"lifecube/src/driver"
	"lifecube/src/universe"
	"lifecube/src/view"
	"log"
	"os"
	"sort"
	"strings"
	"time"
)

//headlessGenerations limits a non interactive run when no limit is given
const headlessGenerations = 100

var (
	engines = map[string]func(o *universe.Options) universe.Universe{
		"base": func(o *universe.Options) universe.Universe {
			return universe.NewBaseUniverse(o)
		},
		"exact": universe.NewExactUniverse,
	}
)

type EnvOptions struct {
	interactive bool
	engine      string
	chart       string
	printEvery  int
	rotate      [3]bool
}

func main() {
	eo, uo := initOptions()

	u := engines[eo.engine](uo)
	u.SetRotation(eo.rotate[0], eo.rotate[1], eo.rotate[2])

	if eo.interactive {
		d := driver.New(u, uo.Interval)
		v := view.NewViewTerminal(d)
		//the driver goroutine owns the universe from now on
		d.Do(func(u universe.Universe) { u.RegisterViewer(v) })
		v.Start()
		d.Close()
		return
	}

	out := view.NewConsoleOut(os.Stdout, eo.printEvery)
	u.RegisterViewer(out)
	var dc *view.DensityChart
	if eo.chart != "" {
		dc = view.NewDensityChart()
		u.RegisterViewer(dc)
		dc.Start()
	}

	out.Start()
	runHeadless(u, uo.Interval)

	if dc != nil {
		if err := dc.Save(eo.chart); err != nil {
			log.Fatalln(err)
		}
		fmt.Printf("Density chart saved to %v\n", eo.chart)
	}
}

//runHeadless drives the universe from the current goroutine until it is finished
func runHeadless(u universe.Universe, interval time.Duration) {
	u.Start()
	for u.Status().RunningMode != universe.RunningStateFinished {
		u.Frame()
		if interval > 0 {
			time.Sleep(interval)
		}
	}
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	o := universe.DefaultUniverseOptions
	uo = &o
	//0 lets the driver pick the default frame rate and a headless run go at full speed
	uo.Interval = 0
	eo = &EnvOptions{engine: "base", printEvery: 10, rotate: [3]bool{true, true, true}}

	engineNames := make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)

	templateNames := make([]string, 0)
	for _, t := range universe.BuiltinTemplates(uo.Size) {
		templateNames = append(templateNames, t.Name)
	}

	flaggy.SetName("lifecube")
	flaggy.SetDescription("\"The Life\" game simulation in a cube")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Size, "d", "size", "Edge length of the simulation cube")
	flaggy.Int(&uo.Rules.BirthMin, "", "birthMin", "Minimum neighbors for a dead cell to be born")
	flaggy.Int(&uo.Rules.BirthMax, "", "birthMax", "Maximum neighbors for a dead cell to be born")
	flaggy.Int(&uo.Rules.Overpopulation, "", "overpopulation", "A live cell with more neighbors dies")
	flaggy.Int(&uo.Rules.Underpopulation, "", "underpopulation", "A live cell with fewer neighbors dies")
	flaggy.String(&uo.Template, "p", "preset", "Preset to settle ["+strings.Join(templateNames, "|")+"]")
	flaggy.Int64(&uo.Seed, "r", "seed", "Seed of the random settling")
	flaggy.Duration(&uo.Interval, "i", "interval", "Interval between two frames, for example 16ms, by default 60 frames per second in interactive mode and full speed otherwise")
	flaggy.Int(&uo.MaxGenerations, "s", "maxGenerations", "Limit the simulation to maxGenerations")
	flaggy.Int(&uo.SubStride, "", "subStride", "Frames between two animation steps")
	flaggy.Int(&uo.SuperStride, "", "superStride", "Frames between two generations")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.String(&eo.engine, "e", "engine", "Engine to use ["+strings.Join(engineNames, "|")+"]")
	flaggy.String(&eo.chart, "c", "chart", "Save the density of every generation as PNG chart to this file")
	flaggy.Int(&eo.printEvery, "", "printEvery", "Print the progress every printEvery generations")
	flaggy.Bool(&eo.rotate[0], "", "rotateX", "Auto rotation around the x axis")
	flaggy.Bool(&eo.rotate[1], "", "rotateY", "Auto rotation around the y axis")
	flaggy.Bool(&eo.rotate[2], "", "rotateZ", "Auto rotation around the z axis")

	flaggy.Parse()

	if _, ok := engines[eo.engine]; !ok {
		flaggy.ShowHelpAndExit("unknown engine")
	}
	known := false
	for _, name := range templateNames {
		known = known || name == uo.Template
	}
	if !known {
		flaggy.ShowHelpAndExit("unknown preset")
	}
	if uo.Size < 3 {
		flaggy.ShowHelpAndExit("the size must be at least 3")
	}

	if !eo.interactive && uo.MaxGenerations <= 0 {
		uo.MaxGenerations = headlessGenerations
	}

	return
}
