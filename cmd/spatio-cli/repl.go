package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/kass/spatio/internal/resp"
)

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(0, 1)
)

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		promptStyle = lipgloss.NewStyle()
		resultStyle = lipgloss.NewStyle()
		errStyle = lipgloss.NewStyle()
		infoStyle = lipgloss.NewStyle()
		dimStyle = lipgloss.NewStyle()
		boxStyle = lipgloss.NewStyle()
	}
}

type replModel struct {
	conn    net.Conn
	reader  *bufio.Reader
	input   textinput.Model
	history []string
	addr    string
	quit    bool
}

type replResultMsg struct {
	line string
	err  error
}

func runREPL(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer conn.Close()

	ti := textinput.New()
	ti.Placeholder = "SET fleet truck42 {\"type\":\"Point\",\"coordinates\":[-122.4,37.8]}"
	ti.Focus()
	ti.Prompt = ""

	m := replModel{
		conn:   conn,
		reader: bufio.NewReader(conn),
		input:  ti,
		addr:   addr,
	}

	program := tea.NewProgram(m)
	_, err = program.Run()
	return err
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
				return m, tea.Quit
			}
			fields := splitCommandLine(line)
			result, err := sendCommand(m.conn, fields)
			rendered := m.renderResult(line, result, err)
			m.history = append(m.history, rendered)
			if err != nil {
				return m, nil
			}
			if strings.EqualFold(fields[0], "QUIT") {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) renderResult(line string, v resp.Value, err error) string {
	prefix := promptStyle.Render("spatio> ") + line
	if err != nil {
		return prefix + "\n" + errStyle.Render(err.Error())
	}
	return prefix + "\n" + resultStyle.Render(formatValue(v))
}

func (m replModel) View() string {
	var b strings.Builder
	b.WriteString(infoStyle.Render(fmt.Sprintf("connected to %s", m.addr)))
	b.WriteString("\n\n")

	start := 0
	if len(m.history) > 10 {
		start = len(m.history) - 10
	}
	for _, entry := range m.history[start:] {
		b.WriteString(entry)
		b.WriteString("\n\n")
	}

	b.WriteString(boxStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter to send, esc or ctrl+c to quit"))
	return b.String()
}

// splitCommandLine is a minimal whitespace tokenizer. Single quotes group a
// field that contains spaces and are dropped; double quotes are kept as
// typed, so a GeoJSON argument can be passed as one field.
func splitCommandLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '\'':
			inQuotes = !inQuotes
		case r == ' ' && !inQuotes:
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}
