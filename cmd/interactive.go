package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Beastly713/hashira/pkg/format"
	"github.com/Beastly713/hashira/pkg/pipeline"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Styles
var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
)

const helpText = "Navigate: ↑/↓ | Enter: Open Dir | Space: Select | /: Filter | 's': Solve Selected | q: Quit"

type fileItem struct {
	path     string
	name     string
	isDir    bool
	selected bool
}

type model struct {
	path      string
	files     []fileItem
	cursor    int
	status    string
	results   []string
	filter    textinput.Model
	filtering bool
	quitting  bool
	config    pipeline.Config
}

func initialModel(config pipeline.Config) model {
	cwd, _ := os.Getwd()

	ti := textinput.New()
	ti.Placeholder = "name contains..."
	ti.Prompt = "/ "

	m := model{
		path:   cwd,
		status: helpText,
		filter: ti,
		config: config,
	}
	m.loadFiles()
	return m
}

func (m *model) loadFiles() {
	entries, err := os.ReadDir(m.path)
	if err != nil {
		m.status = "Error reading directory"
		return
	}

	needle := strings.ToLower(m.filter.Value())

	m.files = []fileItem{}
	// Parent directory
	m.files = append(m.files, fileItem{name: "..", isDir: true, path: filepath.Dir(m.path)})

	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && !format.IsDocument(name) {
			continue
		}
		if needle != "" && !e.IsDir() && !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		m.files = append(m.files, fileItem{
			name:  name,
			isDir: e.IsDir(),
			path:  filepath.Join(m.path, name),
		})
	}
	m.cursor = 0
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.files)-1 {
				m.cursor++
			}

		case "enter":
			selected := m.files[m.cursor]
			if selected.isDir {
				m.path = selected.path
				m.loadFiles()
			}

		case " ":
			if !m.files[m.cursor].isDir {
				m.files[m.cursor].selected = !m.files[m.cursor].selected
			}

		case "/":
			m.filtering = true
			return m, m.filter.Focus()

		case "s":
			m.status = "Solving..."
			return m, m.solveSelected()
		}

	case resultsMsg:
		m.results = msg.lines
		m.status = msg.status
	}

	return m, nil
}

// updateFilter routes keys to the filter input until it is applied or dismissed.
func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		m.loadFiles()
		return m, nil

	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.loadFiles()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

type resultsMsg struct {
	lines  []string
	status string
}

func (m model) solveSelected() tea.Cmd {
	var selected []fileItem
	for _, f := range m.files {
		if f.selected {
			selected = append(selected, f)
		}
	}
	config := m.config

	return func() tea.Msg {
		if len(selected) == 0 {
			return resultsMsg{status: "No files selected!"}
		}

		var jobs []pipeline.Job
		var lines []string
		for _, f := range selected {
			doc, err := pipeline.Load(f.path)
			if err != nil {
				lines = append(lines, errorStyle.Render(fmt.Sprintf("%s: %v", f.name, err)))
				continue
			}
			jobs = append(jobs, pipeline.Job{Source: f.name, Document: doc})
		}

		results, err := pipeline.SolveAll(context.Background(), jobs, config)
		if err != nil {
			return resultsMsg{lines: lines, status: fmt.Sprintf("Error: %v", err)}
		}

		return resultsMsg{
			lines:  append(lines, renderResults(results)...),
			status: fmt.Sprintf("Solved %d of %d share set(s). %s", countSolved(results), len(selected), helpText),
		}
	}
}

func countSolved(results []pipeline.Result) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// renderResults formats one line per result and destroys the secrets it printed.
func renderResults(results []pipeline.Result) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			lines = append(lines, errorStyle.Render(fmt.Sprintf("%s: %v", r.Source, r.Err)))
			continue
		}
		lines = append(lines, checkedStyle.Render(fmt.Sprintf("%s: %s", r.Source, r.Secret)))
		r.Secret.Destroy()
	}
	return lines
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	s := fmt.Sprintf("Directory: %s\n", m.path)
	if m.filtering || m.filter.Value() != "" {
		s += m.filter.View() + "\n"
	}
	s += "\n"

	for i, file := range m.files {
		cursor := " " // no cursor
		if m.cursor == i {
			cursor = ">"
			s += focusedStyle.Render(cursor)
		} else {
			s += cursor
		}

		checked := " "
		if file.selected {
			checked = "x"
		}

		line := ""
		if file.isDir {
			line = fmt.Sprintf("[DIR] %s", file.name)
		} else {
			line = fmt.Sprintf("[%s] %s", checked, file.name)
		}

		if file.selected {
			line = checkedStyle.Render(line)
		}

		s += " " + line + "\n"
	}

	if len(m.results) > 0 {
		s += "\n" + strings.Join(m.results, "\n") + "\n"
	}

	s += fmt.Sprintf("\n%s\n", m.status)
	return docStyle.Render(s)
}

// Cobra command setup
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive terminal UI for solving share sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		config := pipeline.Config{Termwise: interactiveTermwise}
		p := tea.NewProgram(initialModel(config))
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

var interactiveTermwise bool

func init() {
	rootCmd.AddCommand(interactiveCmd)

	interactiveCmd.Flags().BoolVar(&interactiveTermwise, "termwise", false, "Divide each Lagrange term separately")
}
