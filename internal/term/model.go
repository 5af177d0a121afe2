// Package term renders the whoami panel in a terminal. The render loop reads
// the panel slots on every frame and never waits for the fetch tasks.
package term

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/whoami/internal/model"
	"github.com/maxbolgarin/whoami/internal/model/interfaces"
	"github.com/maxbolgarin/whoami/internal/slot"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")).Bold(true)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	linkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5a9bd5"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	sectionStyle = lipgloss.NewStyle().Underline(true)
)

var _ tea.Model = (*panelModel)(nil)

type frameMsg time.Time

type panelModel struct {
	panel   interfaces.Panel
	cfg     Config
	spinner spinner.Model
	width   int
}

func newModel(cfg Config, panel interfaces.Panel) *panelModel {
	return &panelModel{
		panel:   panel,
		cfg:     cfg,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Run draws the panel until the user quits or ctx is done
func Run(ctx context.Context, cfg Config, panel interfaces.Panel) error {
	if err := cfg.PrepareAndValidate(); err != nil {
		return erro.Wrap(err, "validate config")
	}
	if panel == nil {
		return erro.New("panel is required")
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !cfg.NoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(newModel(cfg, panel), opts...).Run(); err != nil {
		return erro.Wrap(err, "run terminal program")
	}
	return nil
}

func (m *panelModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.frame())
}

func (m *panelModel) frame() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *panelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case frameMsg:
		// nothing to update, the next View reads fresh slot values
		return m, m.frame()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *panelModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("$ whoami"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.avatarView(), "  ", m.bioView()))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Latest Commits"))
	b.WriteString("\n")
	b.WriteString(m.commitsView())
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("q: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m *panelModel) avatarView() string {
	v := m.panel.Profile().Load()
	switch v.State {
	case slot.Populated:
		if tex, ok := v.Value.Texture.(*Texture); ok {
			return tex.String()
		}
		return mutedStyle.Render("[picture]")
	case slot.Failed:
		return mutedStyle.Render("[no picture]")
	default:
		return m.spinner.View()
	}
}

func (m *panelModel) bioView() string {
	bio := m.panel.Bio()

	lines := []string{nameStyle.Render(bio.Name)}
	if bio.GitHub != "" {
		lines = append(lines, linkStyle.Render(bio.GitHub))
	}
	if bio.Email != "" {
		lines = append(lines, linkStyle.Render("✉ "+bio.Email))
	}
	return strings.Join(lines, "\n")
}

func (m *panelModel) commitsView() string {
	v := m.panel.Commits().Load()
	switch v.State {
	case slot.Failed:
		return mutedStyle.Render(fmt.Sprintf("unavailable: %s", v.Err))
	case slot.Populated:
		return renderCommits(v.Value.Take(m.cfg.MaxCommits), m.width)
	default:
		return m.spinner.View() + " " + mutedStyle.Render("loading...")
	}
}

func renderCommits(commits []model.DisplayCommit, width int) string {
	if len(commits) == 0 {
		return mutedStyle.Render("no recent commits")
	}

	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		line := linkStyle.Render("["+c.RepoName+"]") + " " + c.MessageShort
		if width > 0 {
			line = lipgloss.NewStyle().MaxWidth(width).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
