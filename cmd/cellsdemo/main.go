package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"
	"github.com/kungfusheep/cells"
	"github.com/kungfusheep/cells/term"
)

var (
	count      = flag.Int("items", 40, "number of rows to start with")
	animated   = flag.Bool("animated", true, "animate changes")
	maxChanges = flag.Int("max-changes", cells.DefaultMaxAnimatedChanges, "largest change set that is still animated")
	flash      = flag.Int("flash", term.DefaultFlashFrames, "frames inserted and moved rows stay lit")
	themeName  = flag.String("theme", "dark", "color theme: dark, light or mono")
)

const settleDelay = 300 * time.Millisecond

type task struct {
	id    int
	title string
	done  bool
}

type settleMsg struct{ gen int }

type model struct {
	list   *term.List
	grid   *term.Grid
	status *term.Panel
	bar    *cells.StackReloader

	tasks     []task
	nextID    int
	showGrid  bool
	scrollGen int
	applies   int
	rng       *rand.Rand
	width     int
	height    int
}

var words = []string{"refactor", "deploy", "review", "benchmark", "document", "release", "profile", "triage", "rebase", "migrate"}

func newModel(width, height int, theme term.Theme) *model {
	m := &model{
		width:  width,
		height: height,
		rng:    rand.New(rand.NewSource(1)),
		status: term.NewPanel(cells.Horizontal),
	}
	opts := []cells.Option{
		cells.WithAnimated(*animated),
		cells.WithMaxAnimatedChanges(*maxChanges),
	}
	m.list = term.NewList(width, height-1,
		term.WithFlashFrames(*flash),
		term.WithTheme(theme),
		term.WithAdapterOptions(opts...),
	)
	m.grid = term.NewGrid(width, height-1, opts...)
	m.bar = cells.NewStackReloader(m.status)
	for range *count {
		m.tasks = append(m.tasks, m.newTask())
	}
	return m
}

func (m *model) newTask() task {
	m.nextID++
	return task{id: m.nextID, title: words[m.rng.Intn(len(words))] + " " + words[m.rng.Intn(len(words))]}
}

func (m *model) taskCell(i int) cells.Cell {
	t := m.tasks[i]
	muted := m.list.Theme().Muted
	c := cells.NewCell(t.id, term.NewLabel, func(l *term.Label) {
		mark := "[ ]"
		l.Style = term.Style{}
		if t.done {
			mark = "[x]"
			l.Style = muted
		}
		l.SetText(fmt.Sprintf(" %s %3d  %s", mark, t.id, t.title))
	}).OnSelect(func() {
		for j := range m.tasks {
			if m.tasks[j].id == t.id {
				m.tasks[j].done = !m.tasks[j].done
			}
		}
	})
	return cells.OnHighlight(c, func(l *term.Label, on bool) {
		l.Highlighted = on
	})
}

func (m *model) header(id, text string) cells.Cell {
	style := m.list.Theme().Header
	return cells.NewCell(id, term.NewLabel, func(l *term.Label) {
		l.Style = style
		l.SetText(text)
	})
}

func (m *model) sections() []cells.Section {
	var open, done []cells.Cell
	for i, t := range m.tasks {
		if t.done {
			done = append(done, m.taskCell(i))
		} else {
			open = append(open, m.taskCell(i))
		}
	}
	out := []cells.Section{
		cells.NewSection("open", open).WithHeader(m.header("open-header", fmt.Sprintf("Open (%d)", len(open)))),
	}
	if len(done) > 0 {
		out = append(out, cells.NewSection("done", done).WithHeader(m.header("done-header", fmt.Sprintf("Done (%d)", len(done)))))
	}
	return out
}

func label(id any, text string) cells.Cell {
	return cells.NewCell(id, term.NewLabel, func(l *term.Label) { l.SetText(text) })
}

func fill(id any, color string) cells.Cell {
	return cells.NewCell(id, term.NewFill, func(f *term.Fill) {
		f.Style = term.Style{BG: lipgloss.Color(color)}
	})
}

// board is the layout screen.
func (m *model) board() cells.Node {
	open := 0
	for _, t := range m.tasks {
		if !t.done {
			open++
		}
	}
	recent := m.tasks[max(0, len(m.tasks)-4):]
	stats := m.list.Adapter().Stats()

	return cells.VStack(
		cells.HStack(
			cells.Frame(label("title", "cells board")).MaxWidth(30).Align(cells.Alignment{Horizontal: cells.AlignStart}),
			cells.Spacer(),
			label("counts", fmt.Sprintf("%d open / %d total", open, len(m.tasks))),
		).Spacing(1),
		cells.FixedSpacer(1),
		cells.Background(
			cells.HStack(
				cells.ForEach(recent, func(t task) int { return t.id }, func(t task) cells.Node {
					return cells.Frame(label(fmt.Sprintf("card-%d", t.id), fmt.Sprintf("#%d\n%s", t.id, t.title))).Width(20).Height(3)
				}),
			).Spacing(2),
			cells.Fill(fill("cards-bg", "236")),
		),
		cells.FixedSpacer(1),
		cells.Either(len(m.tasks) == 0,
			label("empty", "nothing to do"),
			cells.Container(cells.VStack(
				label("stats-created", fmt.Sprintf("views created  %d", stats.Created)),
				label("stats-reused", fmt.Sprintf("views reused   %d", stats.Reused)),
				label("stats-released", fmt.Sprintf("views released %d", stats.Released)),
			)),
		),
	)
}

func (m *model) apply() {
	m.list.Apply(m.sections(), true, func() { m.applies++ })
	if m.showGrid {
		m.grid.Reload(m.board(), nil)
	}
	m.updateStatus()
}

func (m *model) updateStatus() {
	stats := m.list.Adapter().Stats()
	mode := "list"
	if m.showGrid {
		mode = "board"
	}
	scrolling := ""
	if m.list.IsScrolling() {
		scrolling = "scrolling"
	}
	m.bar.ReloadCells([]cells.Cell{
		label("mode", mode),
		label("stats", fmt.Sprintf("created %d reused %d released %d renders %d", stats.Created, stats.Reused, stats.Released, stats.Renders)),
		label("applies", fmt.Sprintf("applies %d", m.applies)),
		label("scrolling", scrolling),
		label("help", "s shuffle  a add  x delete  D dup  enter toggle  g board  q quit"),
	}, nil)
	spacing := 2.0
	m.status.Configure(cells.StackStyle{Spacing: &spacing})
}

func (m *model) Init() tea.Cmd {
	m.apply()
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.Resize(msg.Width, msg.Height-1)
		m.grid.Resize(msg.Width, msg.Height-1)
		return m, nil

	case term.FrameMsg:
		m.list.Tick()
		m.updateStatus()
		return m, m.list.Animate()

	case settleMsg:
		if msg.gen == m.scrollGen {
			m.list.Settle()
			m.grid.Settle()
			m.updateStatus()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			m.rng.Shuffle(len(m.tasks), func(i, j int) { m.tasks[i], m.tasks[j] = m.tasks[j], m.tasks[i] })
		case "a":
			at := m.rng.Intn(len(m.tasks) + 1)
			m.tasks = append(m.tasks[:at], append([]task{m.newTask()}, m.tasks[at:]...)...)
		case "x":
			if id, ok := m.list.Cursor(); ok {
				m.tasks = deleteTask(m.tasks, id)
			}
		case "D":
			if len(m.tasks) > 0 {
				m.tasks = append(m.tasks, m.tasks[m.rng.Intn(len(m.tasks))])
			}
		case "enter":
			m.list.Activate()
		case "up", "k":
			m.list.MoveCursor(-1)
			return m, nil
		case "down", "j":
			m.list.MoveCursor(1)
			return m, nil
		case "pgdown", "pgup":
			delta := m.height / 2
			if msg.String() == "pgup" {
				delta = -delta
			}
			if m.showGrid {
				m.grid.ScrollBy(delta)
			} else {
				m.list.ScrollBy(delta)
			}
			m.scrollGen++
			gen := m.scrollGen
			m.updateStatus()
			return m, tea.Tick(settleDelay, func(time.Time) tea.Msg { return settleMsg{gen: gen} })
		case "g":
			m.showGrid = !m.showGrid
		default:
			return m, nil
		}
		m.apply()
		return m, m.list.Animate()
	}
	return m, nil
}

func deleteTask(tasks []task, id cells.ID) []task {
	for i, t := range tasks {
		if cells.Key(t.id) == id {
			return append(tasks[:i], tasks[i+1:]...)
		}
	}
	return tasks
}

func (m *model) View() string {
	var b strings.Builder
	if m.showGrid {
		b.WriteString(m.grid.Render())
	} else {
		b.WriteString(m.list.Render())
	}
	b.WriteByte('\n')
	bar := term.NewCanvas(m.width, 1)
	m.status.Draw(bar, 0, 0, m.width, 1)
	b.WriteString(bar.Render())
	return b.String()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	width, height, err := term.TerminalSize()
	if err != nil {
		glog.Warningf("[term]%v, using %dx%d\n", err, width, height)
	}

	theme, ok := term.ThemeByName(*themeName)
	if !ok {
		glog.Warningf("[term]unknown theme %q, using dark\n", *themeName)
		theme = term.ThemeDark
	}

	p := tea.NewProgram(newModel(width, height, theme), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
