package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/SeokHunPark/dicebox/internal/dice"
	"github.com/SeokHunPark/dicebox/internal/phys"
	"github.com/SeokHunPark/dicebox/internal/roll"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
	stepDt          = 1.0 / 60.0
)

type TickMsg time.Time

// Model is the live roll view: an orbiting 3D tray on a braille canvas
// next to a stats panel.
type Model struct {
	session *roll.Session
	kind    dice.Kind
	count   int

	canvas *Canvas
	camera *Camera
	wf     *Wireframe

	running  bool
	showHelp bool

	impactSpeeds  []float64
	floorHits     int
	wallHits      int
	diceHits      int
	energyHistory []float64
}

// NewModel builds the live view and throws the first roll.
func NewModel(params phys.Params, seed int64, kind dice.Kind, count int, color string) *Model {
	m := &Model{
		kind:    kind,
		count:   count,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewTrayCamera(params.TrayHalfExtent, params.WallHeight),
		wf:      NewWireframe(),
		running: true,
	}
	m.session = roll.NewSession(phys.NewWorld(params, seed), roll.SinkFunc(m.onImpact))
	m.session.SetColor(color)
	m.session.Roll(kind, count)
	return m
}

func (m *Model) onImpact(ev roll.Event) {
	m.impactSpeeds = append(m.impactSpeeds, ev.Speed)
	if len(m.impactSpeeds) > historyCapacity {
		m.impactSpeeds = m.impactSpeeds[1:]
	}
	switch ev.Kind {
	case roll.ContactFloor:
		m.floorHits++
	case roll.ContactWall:
		m.wallHits++
	case roll.ContactDice:
		m.diceHits++
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reroll()
		case "k":
			m.cycleKind()
		case "[":
			if m.count > 1 {
				m.count--
				m.reroll()
			}
		case "]":
			if m.count < 10 {
				m.count++
				m.reroll()
			}
		case "left", "h":
			m.camera.Orbit(-0.1, 0)
		case "right", "l":
			m.camera.Orbit(0.1, 0)
		case "up":
			m.camera.Orbit(0, 0.1)
		case "down":
			m.camera.Orbit(0, -0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.session.Step(stepDt)
			m.recordEnergy()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) reroll() {
	m.impactSpeeds = m.impactSpeeds[:0]
	m.floorHits, m.wallHits, m.diceHits = 0, 0, 0
	m.energyHistory = m.energyHistory[:0]
	m.session.Roll(m.kind, m.count)
	m.running = true
}

func (m *Model) cycleKind() {
	kinds := dice.Kinds()
	for i, k := range kinds {
		if k == m.kind {
			m.kind = kinds[(i+1)%len(kinds)]
			break
		}
	}
	m.reroll()
}

func (m *Model) recordEnergy() {
	total := 0.0
	for _, b := range m.session.World().Dice() {
		total += b.KineticEnergy()
	}
	m.energyHistory = append(m.energyHistory, total)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.wf.Clear()

	p := m.session.World().Params
	m.wf.AddTray(p.TrayHalfExtent, p.WallHeight)
	for _, pose := range m.session.Poses() {
		m.wf.AddDie(pose.Kind, pose.Pos, pose.Rot)
	}
	Render(m.canvas, m.wf, m.camera)
}

func (m *Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("DICEBOX") + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	s.WriteString(labelStyle.Render("Dice") + valueStyle.Render(fmt.Sprintf("%d x %s", m.count, m.kind)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.session.Elapsed())) + "\n")
	if c := m.session.Color(); c != "" {
		s.WriteString(labelStyle.Render("Color") + valueStyle.Render(c) + "\n")
	}

	if results := m.session.Results(); len(results) > 0 {
		total := 0
		parts := make([]string, len(results))
		for i, v := range results {
			total += v
			parts[i] = fmt.Sprintf("%d", v)
		}
		line := strings.Join(parts, " + ")
		if len(results) > 1 {
			line += fmt.Sprintf(" = %d", total)
		}
		s.WriteString("\n" + resultStyle.Render(line) + "\n")
	}

	s.WriteString("\nIMPACTS\n")
	s.WriteString(ImpactBar(m.impactSpeeds, 30) + "\n")
	s.WriteString(labelStyle.Render("floor") + valueStyle.Render(fmt.Sprintf("%d", m.floorHits)) + "\n")
	s.WriteString(labelStyle.Render("wall") + valueStyle.Render(fmt.Sprintf("%d", m.wallHits)) + "\n")
	s.WriteString(labelStyle.Render("dice") + valueStyle.Render(fmt.Sprintf("%d", m.diceHits)) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nR:Roll K:Die [ ]:Count\nArrows:Orbit +/-:Zoom\nSP:Pause ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func (m *Model) statusLine() string {
	switch m.session.Phase() {
	case roll.PhaseResolved:
		return resultStyle.Render("RESOLVED")
	case roll.PhaseSettling:
		if !m.running {
			return "PAUSED"
		}
		return settlingStyle.Render("SETTLING")
	case roll.PhaseRolling:
		return "ROLLING"
	default:
		return "IDLE"
	}
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  R        - Throw the dice again     ║
║  K        - Cycle die kind           ║
║  [ / ]    - Fewer / more dice        ║
║  Arrows   - Orbit the camera         ║
║  + / -    - Zoom in / out            ║
║  Space    - Pause / resume           ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
