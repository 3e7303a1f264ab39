package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shadowscan/internal/result"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	findingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	byFile     map[string][]resultFinding
	lastUpdate time.Time
}

type resultFinding struct {
	line, column int
	message      string
}

type updateMsg struct {
	files []result.File
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		for _, file := range msg.files {
			findings := make([]resultFinding, 0, len(file.Findings))
			for _, f := range file.Findings {
				findings = append(findings, resultFinding{line: f.Line, column: f.Column, message: f.Message})
			}
			if len(findings) == 0 {
				delete(m.byFile, file.Path)
				continue
			}
			m.byFile[file.Path] = findings
		}
		m.lastUpdate = time.Now()
		m.list.SetItems(m.items())
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) items() []list.Item {
	paths := make([]string, 0, len(m.byFile))
	for path := range m.byFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	items := []list.Item{}
	for _, path := range paths {
		for _, f := range m.byFile[path] {
			items = append(items, item{
				title: f.message,
				desc:  fmt.Sprintf("%s:%d:%d", path, f.line, f.column),
			})
		}
	}
	return items
}

func (m model) View() string {
	total := 0
	for _, findings := range m.byFile {
		total += len(findings)
	}

	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files with findings",
		m.lastUpdate.Format("15:04:05"), len(m.byFile)))

	var summary string
	if total == 0 {
		summary = successStyle.Render("✅ No shadowed builtins")
	} else {
		summary = findingStyle.Render(fmt.Sprintf("⚠️  %d shadowed builtins", total))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Builtin Shadowing Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel(files []result.File) model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Findings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	m := model{
		list:       l,
		byFile:     make(map[string][]resultFinding),
		lastUpdate: time.Now(),
	}
	for _, file := range files {
		if len(file.Findings) == 0 {
			continue
		}
		findings := make([]resultFinding, 0, len(file.Findings))
		for _, f := range file.Findings {
			findings = append(findings, resultFinding{line: f.Line, column: f.Column, message: f.Message})
		}
		m.byFile[file.Path] = findings
	}
	m.list.SetItems(m.items())
	return m
}

func runUI(app *App, initial []result.File) error {
	p := tea.NewProgram(initialModel(initial), tea.WithAltScreen())

	if err := app.StartWatcher(func(files []result.File) {
		p.Send(updateMsg{files: files})
	}); err != nil {
		return err
	}

	_, err := p.Run()
	return err
}
