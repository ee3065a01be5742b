package view

import (
	"bytes"
	"fmt"
	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"image/color"
	"lifecube/src/universe"
	"log"
	"strings"
	"sync"
	"time"
)

//Commander runs a command on the goroutine which owns the universe
type Commander interface {
	Do(cmd func(u universe.Universe))
}

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

/*
	ConsoleUI shows one layer of the cube in the terminal.
	Register, Refresh and the commands run on the goroutine of the driver, they render text
	which the gocui main loop only copies into its views, so the universe is never read concurrently.
*/
type ConsoleUI struct {
	u     universe.Universe
	d     Commander
	g     *gocui.Gui
	k     []keyBindings
	layer int

	mu     sync.Mutex
	field  string
	status string
	config string

	deadFiller string
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}

	sizeFillers = []string{"░", "▒", "▓", "█"}
)

func NewViewTerminal(d Commander) *ConsoleUI {

	var err error
	t := ConsoleUI{
		d:          d,
		layer:      1,
		deadFiller: "··",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'n', "N", "Next generation", t.cmdNextGeneration, ""},
		{'c', "C", "Reset", t.cmdReset, ""},
		{'w', "W", "Reset with new seed", t.cmdReseed, ""},
		{'p', "P", "Next preset", t.cmdNextPreset, ""},
		{gocui.KeyArrowUp, "↑", "Layer up", t.cmdLayerUp, ""},
		{gocui.KeyArrowDown, "↓", "Layer down", t.cmdLayerDown, ""},
		{'x', "X", "Rotate X", t.cmdRotate(0), ""},
		{'y', "Y", "Rotate Y", t.cmdRotate(1), ""},
		{'z', "Z", "Rotate Z", t.cmdRotate(2), ""},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
	t.Refresh()
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.render()
	t.g.Update(func(g *gocui.Gui) error {
		t.writeView(g, "battlefield", t.snapshot(&t.field))
		t.writeView(g, "status", t.snapshot(&t.status))
		t.writeView(g, "configuration", t.snapshot(&t.config))
		return nil
	})
}

//GenerationAdvanced is not used, the density is shown from the status on the next refresh
func (t *ConsoleUI) GenerationAdvanced(int, float64) {}

//render builds the texts of all views from the universe
func (t *ConsoleUI) render() {
	field := t.renderField()
	status := t.renderStatus()
	config := t.renderConfiguration()
	t.mu.Lock()
	t.field, t.status, t.config = field, status, config
	t.mu.Unlock()
}

func (t *ConsoleUI) snapshot(s *string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *s
}

func (t *ConsoleUI) writeView(g *gocui.Gui, name string, text string) {
	if v, e := g.View(name); e == nil {
		v.Clear()
		_, _ = fmt.Fprint(v, text)
	}
}

//renderField draws the selected layer, one row per y, two characters per cell
func (t *ConsoleUI) renderField() string {
	l := t.u.Lattice()
	if t.layer > l.Depth() {
		t.layer = l.Depth()
	}
	var b bytes.Buffer
	for y := 1; y <= l.Size(); y++ {
		if y != 1 {
			b.WriteByte(10)
		}
		for x := 1; x <= l.Size(); x++ {
			b.WriteString(t.renderCell(t.u.Cell(x, y, t.layer)))
		}
	}
	return b.String()
}

func (t *ConsoleUI) renderCell(c *universe.Cell) string {
	if !c.Visible() {
		return t.deadFiller
	}
	grade := (c.Size() - universe.MinCellSize) / (universe.MaxCellSize - universe.MinCellSize)
	i := int(grade * float64(len(sizeFillers)))
	if i >= len(sizeFillers) {
		i = len(sizeFillers) - 1
	}
	filler := strings.Repeat(sizeFillers[i], 2)
	return aurora.Index(colorIndex(c.Color()), filler).String()
}

//colorIndex maps a color to the 6x6x6 cube of the 256 color terminal palette
func colorIndex(c color.RGBA) uint8 {
	level := func(v uint8) int {
		l := int(v) * 6 / 256
		if l > 5 {
			l = 5
		}
		return l
	}
	return uint8(16 + 36*level(c.R) + 6*level(c.G) + level(c.B))
}

func (t *ConsoleUI) renderStatus() string {
	s := t.u.Status()
	counter := "early exit"
	if s.ExactCount {
		counter = "exact"
	}
	var b bytes.Buffer
	_, _ = fmt.Fprintln(&b, t.renderProp("Generation", "%v", s.Generation))
	_, _ = fmt.Fprintln(&b, t.renderProp("Live Cells", "%v", s.LiveCells))
	_, _ = fmt.Fprintln(&b, t.renderProp("Density", "%.2f%%", s.Density))
	_, _ = fmt.Fprintln(&b, t.renderProp("Counter", "%v", counter))
	_, _ = fmt.Fprintln(&b, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(&b, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
	_, _ = fmt.Fprintln(&b, t.renderProp("Layer", "%v / %v", t.layer, t.u.Lattice().Depth()))
	_, _ = fmt.Fprintln(&b, t.renderProp("Layer height", "%v", layerHeight(t.u.Orientation(), t.layer)))
	return b.String()
}

func (t *ConsoleUI) renderConfiguration() string {
	c := t.u.Options()
	o := t.u.Orientation()
	var b bytes.Buffer
	_, _ = fmt.Fprintln(&b, t.renderProp("Dimension", "%v^3", c.Size))
	_, _ = fmt.Fprintln(&b, t.renderProp("Rules", "%v", t.u.Rules()))
	_, _ = fmt.Fprintln(&b, t.renderProp("Preset", "%v", c.Template))
	_, _ = fmt.Fprintln(&b, t.renderProp("Seed", "%v", c.Seed))
	_, _ = fmt.Fprintln(&b, t.renderProp("Cadence", "%v/%v frames", c.SubStride, c.SuperStride))
	_, _ = fmt.Fprintln(&b, t.renderProp("Rotation", "%v %v %v", axisAngle("x", o, 0), axisAngle("y", o, 1), axisAngle("z", o, 2)))
	return b.String()
}

//layerHeight returns the height of layer z in scene space, relative to the pivot of the rotation
func layerHeight(o universe.Orientation, z int) float32 {
	return o.CellPosition(1, 1, z).Y() - o.Pivot().Y()
}

func axisAngle(name string, o universe.Orientation, i int) string {
	if !o.Rotate[i] {
		return name + ":off"
	}
	return fmt.Sprintf("%s:%03.0f", name, o.Angles[i])
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 34
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil

	}
	if _, err := t.headerLayout(g, 3, "\"The Life\" game simulation in 3D"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		_, _ = fmt.Fprint(v, t.snapshot(&t.config))
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		_, _ = fmt.Fprint(v, t.snapshot(&t.status))
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Layer"
		v.Frame = true
		_, _ = fmt.Fprint(v, t.snapshot(&t.field))
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.d.Do(func(u universe.Universe) { u.Start() })
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.d.Do(func(u universe.Universe) { u.Stop() })
	return nil
}

func (t *ConsoleUI) cmdNextGeneration(_ *gocui.View) error {
	t.d.Do(func(u universe.Universe) { u.Step() })
	return nil
}

func (t *ConsoleUI) cmdReset(_ *gocui.View) error {
	t.d.Do(func(u universe.Universe) { t.reset(u, 0) })
	return nil
}

func (t *ConsoleUI) cmdReseed(_ *gocui.View) error {
	seed := time.Now().UnixNano()
	t.d.Do(func(u universe.Universe) { t.reset(u, seed) })
	return nil
}

func (t *ConsoleUI) cmdNextPreset(_ *gocui.View) error {
	t.d.Do(func(u universe.Universe) {
		list := u.Templates()
		current := u.Options().Template
		for i, tmpl := range list {
			if tmpl.Name == current {
				_ = u.SelectTemplate(list[(i+1)%len(list)].Name)
				break
			}
		}
		t.reset(u, 0)
	})
	return nil
}

func (t *ConsoleUI) cmdLayerUp(_ *gocui.View) error {
	t.d.Do(func(u universe.Universe) {
		if t.layer < u.Lattice().Depth() {
			t.layer++
		}
		t.Refresh()
	})
	return nil
}

func (t *ConsoleUI) cmdLayerDown(_ *gocui.View) error {
	t.d.Do(func(u universe.Universe) {
		if t.layer > 1 {
			t.layer--
		}
		t.Refresh()
	})
	return nil
}

func (t *ConsoleUI) cmdRotate(axis int) func(v *gocui.View) error {
	return func(_ *gocui.View) error {
		t.d.Do(func(u universe.Universe) {
			r := u.Orientation().Rotate
			r[axis] = !r[axis]
			u.SetRotation(r[0], r[1], r[2])
			t.Refresh()
		})
		return nil
	}
}

//reset rebuilds the universe, the shown layer is kept inside the active layers of the new lattice
func (t *ConsoleUI) reset(u universe.Universe, seed int64) {
	if err := u.Reset(seed); err != nil {
		log.Println(err)
		return
	}
	if depth := u.Lattice().Depth(); t.layer > depth {
		t.layer = depth
	}
	t.Refresh()
}
