package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/kritchasorn/lendger/cmd/tui/internal/view"
	"github.com/kritchasorn/lendger/internal/config"
	"github.com/kritchasorn/lendger/internal/database"
	"github.com/kritchasorn/lendger/internal/debt"
	debtStore "github.com/kritchasorn/lendger/internal/debt/store"
	"github.com/kritchasorn/lendger/internal/export"
)

type model struct {
	debtService   *debt.Service
	exportService *export.Service

	currentView View

	listView    view.ListModel
	newDebtView view.NewDebtModel
	exportView  view.ExportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewList    View = 1
	ViewNewDebt View = 2
	ViewExport  View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	debtSvc := debt.NewService(debtStore.New(db))
	exportSvc := export.NewService(debtSvc)

	return model{
		debtService:   debtSvc,
		exportService: exportSvc,
		currentView:   ViewMenu,
		listView:      view.NewListModel(debtSvc),
		newDebtView:   view.NewNewDebtModel(debtSvc),
		exportView:    view.NewExportModel(exportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.debtService)

				return m, m.listView.Init()
			case "2":
				m.currentView = ViewNewDebt
				m.newDebtView = view.NewNewDebtModel(m.debtService)

				return m, m.newDebtView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewNewDebt:
		var newModel tea.Model
		newModel, cmd = m.newDebtView.Update(msg)
		m.newDebtView = newModel.(view.NewDebtModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Lendger TUI\n\n" +
				"1. List Debts\n" +
				"2. New Debt\n" +
				"3. Export Ledger\n\n" +
				"q. Quit",
		)
	case ViewList:
		return m.listView.View()
	case ViewNewDebt:
		return m.newDebtView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
