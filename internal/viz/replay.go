package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SeokHunPark/dicebox/internal/phys"
	"github.com/SeokHunPark/dicebox/internal/storage"
)

// ReplayModel plays a stored recording back frame by frame.
type ReplayModel struct {
	meta   *storage.RollMetadata
	frames []storage.Frame
	idx    int

	canvas  *Canvas
	camera  *Camera
	wf      *Wireframe
	playing bool
}

func NewReplayModel(meta *storage.RollMetadata, frames []storage.Frame, params phys.Params) *ReplayModel {
	return &ReplayModel{
		meta:    meta,
		frames:  frames,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewTrayCamera(params.TrayHalfExtent, params.WallHeight),
		wf:      NewWireframe(),
		playing: true,
	}
}

func (m *ReplayModel) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.idx = 0
			m.playing = true
		case "[":
			m.playing = false
			if m.idx > 0 {
				m.idx--
			}
		case "]":
			m.playing = false
			if m.idx < len(m.frames)-1 {
				m.idx++
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
		}
	case TickMsg:
		if m.playing && m.idx < len(m.frames)-1 {
			m.idx++
		} else if m.playing && m.idx >= len(m.frames)-1 {
			m.playing = false
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *ReplayModel) View() string {
	m.canvas.Clear()
	m.wf.Clear()

	if len(m.frames) > 0 {
		frame := m.frames[m.idx]
		// Tray dims come from the camera fit, drawn with defaults.
		p := phys.DefaultParams()
		m.wf.AddTray(p.TrayHalfExtent, p.WallHeight)
		for _, pose := range frame.Poses {
			m.wf.AddDie(pose.Kind, pose.Pos, pose.Rot)
		}
		Render(m.canvas, m.wf, m.camera)
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("REPLAY") + "\n")
	if m.playing {
		s.WriteString("PLAYING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if m.meta != nil {
		id := m.meta.ID
		if len(id) > 8 {
			id = id[:8]
		}
		s.WriteString(labelStyle.Render("Roll") + valueStyle.Render(id) + "\n")
		s.WriteString(labelStyle.Render("Dice") + valueStyle.Render(fmt.Sprintf("%d x %s", m.meta.Count, m.meta.Kind)) + "\n")
		if len(m.meta.Results) > 0 {
			parts := make([]string, len(m.meta.Results))
			for i, v := range m.meta.Results {
				parts[i] = fmt.Sprintf("%d", v)
			}
			s.WriteString(labelStyle.Render("Result") + resultStyle.Render(strings.Join(parts, " ")) + "\n")
		}
	}
	if len(m.frames) > 0 {
		s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d", m.idx+1, len(m.frames))) + "\n")
		s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.frames[m.idx].Time)) + "\n")
	} else {
		s.WriteString(valueStyle.Render("no frames recorded") + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Play/Pause [ ]:Scrub\nR:Restart Arrows:Orbit\nQ:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), panelStyle.Render(s.String()))
}
