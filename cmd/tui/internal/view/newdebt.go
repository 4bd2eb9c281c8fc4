package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kritchasorn/lendger/internal/debt"
)

type NewDebtModel struct {
	CommonModel
	debtService *debt.Service

	form   *huh.Form
	saving bool
	status string

	// Form bindings
	formBorrower  string
	formPrincipal string
	formInterest  string
	formDueDate   string
}

func NewNewDebtModel(debtSvc *debt.Service) NewDebtModel {
	m := NewDebtModel{debtService: debtSvc}
	m.form = m.newForm()
	return m
}

func (m NewDebtModel) Title() string     { return "New Debt" }
func (m NewDebtModel) ShortHelp() string { return "Navigate form | Esc: back" }

func (m *NewDebtModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("borrower").
				Title("Borrower name").
				Value(&m.formBorrower).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("borrower name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("principal").
				Title("Principal amount").
				Placeholder("1000.00").
				Value(&m.formPrincipal).
				Validate(validateRequiredAmount),

			huh.NewInput().
				Key("interest").
				Title("Interest amount (flat fee)").
				Placeholder("250.00").
				Value(&m.formInterest).
				Validate(validateRequiredAmount),

			huh.NewInput().
				Key("due_date").
				Title("Due date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDueDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("expected YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithWidth(48).WithShowHelp(false)
}

func validateRequiredAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return validateAmount(s)
}

func (m NewDebtModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m NewDebtModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debtSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving debt: %v", msg.err)
			return m, nil
		}
		return m, Back

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

	// Read back through the form; the bound fields of this copy can be stale.
	m.formBorrower = m.form.GetString("borrower")
	m.formPrincipal = m.form.GetString("principal")
	m.formInterest = m.form.GetString("interest")
	m.formDueDate = m.form.GetString("due_date")

	m.saving = true
	return m, m.saveCmd()
}

func (m NewDebtModel) View() string {
	content := m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	if m.saving {
		content = "Saving...\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

type debtSavedMsg struct {
	err error
}

func (m NewDebtModel) saveCmd() tea.Cmd {
	borrower := strings.TrimSpace(m.formBorrower)
	principal := parseAmount(m.formPrincipal)
	interest := parseAmount(m.formInterest)
	dueDate, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.formDueDate))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.debtService.Create(ctx, debt.CreateParams{
			BorrowerName:    borrower,
			PrincipalAmount: principal,
			InterestAmount:  interest,
			DueDate:         dueDate,
		})
		return debtSavedMsg{err: err}
	}
}
