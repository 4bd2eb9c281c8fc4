package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kritchasorn/lendger/internal/debt"
	"github.com/kritchasorn/lendger/internal/export"
)

type ExportModel struct {
	CommonModel
	exportService *export.Service

	form   *huh.Form
	saving bool
	status string

	formPath string
}

func NewExportModel(exportSvc *export.Service) ExportModel {
	m := ExportModel{exportService: exportSvc, formPath: "lendger.csv"}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output file").
				Value(&m.formPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(48).WithShowHelp(false)
	return m
}

func (m ExportModel) Title() string     { return "Export Ledger" }
func (m ExportModel) ShortHelp() string { return "Enter: export | Esc: back" }

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Ledger written to %s", msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.formPath = m.form.GetString("path")

	m.saving = true
	return m, m.exportCmd()
}

func (m ExportModel) View() string {
	content := m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	if m.saving {
		content = "Exporting...\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

type exportDoneMsg struct {
	path string
	err  error
}

func (m ExportModel) exportCmd() tea.Cmd {
	path := strings.TrimSpace(m.formPath)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.exportService.ExportToFile(ctx, debt.ListFilter{}, path)
		return exportDoneMsg{path: path, err: err}
	}
}
