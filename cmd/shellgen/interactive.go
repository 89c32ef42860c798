package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/mikeftrict/dznshell/model"
	"github.com/mikeftrict/dznshell/render"
	"github.com/mikeftrict/dznshell/synth"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	portStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	semStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type viewState int

const (
	stateBrowse viewState = iota
	stateDetail
	stateCode
)

type inspectorModel struct {
	shell    *synth.Shell
	comp     *model.Component
	filter   textinput.Model
	ports    []synth.PortBinding
	visible  []synth.PortBinding
	code     string
	width    int
	selected int
	state    viewState
}

func runInteractive(shell *synth.Shell, comp *model.Component) error {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	filter := textinput.New()
	filter.Placeholder = "filter ports"
	filter.Prompt = "/ "

	m := inspectorModel{
		shell:  shell,
		comp:   comp,
		filter: filter,
		ports:  shell.Ports(),
		code:   render.Text(shell.Instructions()),
		width:  width,
	}
	m.applyFilter()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m inspectorModel) Init() tea.Cmd {
	return nil
}

func (m inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.applyFilter()
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.state != stateBrowse {
				m.state = stateBrowse
			}
		case "/":
			if m.state == stateBrowse {
				m.filter.Focus()
				return m, textinput.Blink
			}
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}
		case "enter":
			if m.state == stateBrowse && len(m.visible) > 0 {
				m.state = stateDetail
			}
		case "c":
			m.state = stateCode
		}
	}
	return m, nil
}

func (m *inspectorModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for _, pb := range m.ports {
		if needle == "" || strings.Contains(strings.ToLower(pb.Port.Name), needle) {
			m.visible = append(m.visible, pb)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m inspectorModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("shellgen — %s", m.comp.Name)))
	b.WriteString("\n\n")

	switch m.state {
	case stateCode:
		b.WriteString(detailStyle.Render(m.code))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc: back  q: quit"))
	case stateDetail:
		m.viewDetail(&b)
	default:
		m.viewBrowse(&b)
	}
	return b.String()
}

func (m inspectorModel) viewBrowse(b *strings.Builder) {
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	for i, pb := range m.visible {
		line := fmt.Sprintf("%-12s %-9s %-4s %s",
			pb.Port.Name, pb.Port.Direction, pb.Semantics, pb.Strategy)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + portStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(helpStyle.Render("no ports match"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: detail  c: code  /: filter  q: quit"))
}

func (m inspectorModel) viewDetail(b *strings.Builder) {
	pb := m.visible[m.selected]
	iface := pb.Port.Interface

	b.WriteString(portStyle.Render(fmt.Sprintf("Port %s (%s, %s, accessor %s)",
		pb.Port.Name, pb.Port.Direction, pb.Semantics, pb.Strategy)))
	b.WriteString("\n")
	b.WriteString(semStyle.Render(fmt.Sprintf("Interface %s", iface.Name)))
	b.WriteString("\n\n")

	if pb.Multi != nil {
		b.WriteString(detailStyle.Render(fmt.Sprintf("multi-client: claim=%s release=%s reply=%s",
			pb.Multi.Claim.Name, pb.Multi.Release.Name, pb.Multi.GrantedReply)))
		b.WriteString("\n\n")
	}

	for _, ev := range iface.Events {
		var params []string
		for _, p := range ev.Params {
			params = append(params, fmt.Sprintf("%s %s %s", p.Direction, p.Type, p.Name))
		}
		b.WriteString(fmt.Sprintf("  %-3s %s %s(%s)\n",
			ev.Direction, ev.ReturnType, ev.Name, strings.Join(params, ", ")))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc: back  q: quit"))
}
