package debugger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/suilang/sui/internal/value"
)

// TUI is a split-pane interactive view over a Debugger, grounded on
// the teacher's panel layout (source / state / output / command) but
// trimmed to what Sui actually has: no registers, memory or
// disassembly panels, since there is no addressable memory to show.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application

	MainLayout   *tview.Flex
	SourceView   *tview.TextView
	LocalsView   *tview.TextView
	GlobalsView  *tview.TextView
	BreakView    *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField
}

// NewTUI builds a TUI over d. Call Run to start it.
func NewTUI(d *Debugger) *TUI {
	t := &TUI{
		Debugger: d,
		App:      tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	t.SourceView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.SourceView.SetBorder(true).SetTitle(" Source ")

	t.LocalsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.LocalsView.SetBorder(true).SetTitle(" Locals ")

	t.GlobalsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.GlobalsView.SetBorder(true).SetTitle(" Globals ")

	t.BreakView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.BreakView.SetBorder(true).SetTitle(" Breakpoints/Watchpoints ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	state := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.LocalsView, 0, 1, false).
		AddItem(t.GlobalsView, 0, 1, false).
		AddItem(t.BreakView, 8, 0, false)

	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.SourceView, 0, 2, false).
		AddItem(state, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 4, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF5:
			t.execute("continue")
			return nil
		case tcell.KeyF11:
			t.execute("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd == "" {
		return
	}
	t.execute(cmd)
	t.CommandInput.SetText("")
}

func (t *TUI) execute(cmd string) {
	result, err := t.Debugger.ExecuteCommand(cmd)
	if err != nil {
		t.writeOutput(fmt.Sprintf("[red]error:[white] %v\n", err))
	} else if result != "" {
		t.writeOutput(result + "\n")
	}
	t.RefreshAll()
}

func (t *TUI) writeOutput(text string) {
	fmt.Fprint(t.OutputView, text)
	t.OutputView.ScrollToEnd()
}

// RefreshAll redraws every panel from the debugger's current state.
func (t *TUI) RefreshAll() {
	t.updateSourceView()
	t.updateVarsView(t.LocalsView, t.Debugger.Locals())
	t.updateVarsView(t.GlobalsView, t.Debugger.Globals())
	t.updateBreakView()
	t.App.Draw()
}

func (t *TUI) updateSourceView() {
	t.SourceView.SetText(t.Debugger.listSource())
}

func (t *TUI) updateVarsView(view *tview.TextView, vars map[int64]*value.Value) {
	ids := make([]int64, 0, len(vars))
	for id := range vars {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var lines []string
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("%d = %s", id, vars[id].Display()))
	}
	if len(lines) == 0 {
		view.SetText("[yellow](none)[white]")
		return
	}
	view.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) updateBreakView() {
	var lines []string

	bps := t.Debugger.Breakpoints.All()
	sort.Slice(bps, func(i, j int) bool { return bps[i].Line < bps[j].Line })
	if len(bps) == 0 {
		lines = append(lines, "[yellow]no breakpoints[white]")
	} else {
		for _, bp := range bps {
			status := "enabled"
			if !bp.Enabled {
				status = "disabled"
			}
			lines = append(lines, fmt.Sprintf("  %d: line %d (%s, hits %d)", bp.ID, bp.Line, status, bp.HitCount))
		}
	}

	lines = append(lines, "")

	wps := t.Debugger.Watchpoints.All()
	sort.Slice(wps, func(i, j int) bool { return wps[i].ID < wps[j].ID })
	if len(wps) > 0 {
		lines = append(lines, "[yellow]watchpoints:[white]")
		for _, wp := range wps {
			lines = append(lines, fmt.Sprintf("  %d: %s = %s (hits %d)", wp.ID, wp.Expression, wp.LastValue, wp.HitCount))
		}
	}

	t.BreakView.SetText(strings.Join(lines, "\n"))
}

// Run starts the TUI event loop until the user quits.
func (t *TUI) Run() error {
	t.RefreshAll()
	t.writeOutput("[green]sui debugger[white]\n")
	t.writeOutput("F5 continue, F11 step, ctrl-C quit\n\n")
	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandInput).Run()
}

// Stop ends the TUI event loop.
func (t *TUI) Stop() { t.App.Stop() }
