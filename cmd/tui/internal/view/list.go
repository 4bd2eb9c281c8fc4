package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/kritchasorn/lendger/internal/debt"
)

type listState int

const (
	listStateBrowse listState = iota
	listStatePayment
	listStateConfirmRollover
	listStateHistory
	listStateConfirmDelete
)

type ListModel struct {
	CommonModel
	debtService *debt.Service

	state listState
	table table.Model
	debts []*debt.Debt
	form  *huh.Form

	// Filter cycling
	statusFilterIdx int
	hidePaid        bool

	filter  debt.ListFilter
	loading bool
	saving  bool
	err     error
	status  string

	// Payment form bindings
	formPrincipal  string
	formInterest   string
	formNewDueDate string
	confirmed      bool

	historyTable table.Model
}

func NewListModel(debtSvc *debt.Service) ListModel {
	columns := []table.Column{
		{Title: "Borrower", Width: 20},
		{Title: "Due Date", Width: 12},
		{Title: "Principal Left", Width: 14},
		{Title: "Interest Left", Width: 14},
		{Title: "Status", Width: 9},
		{Title: "", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		debtService: debtSvc,
		table:       t,
		filter:      debt.ListFilter{},
	}
}

func (m ListModel) Title() string { return "Debts" }
func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStatePayment, listStateConfirmRollover, listStateConfirmDelete:
		return "Navigate form | Esc: cancel"
	case listStateHistory:
		return "Esc: back to list"
	}
	return "Esc: back | p: payment | v: history | x: delete | s: status filter | h: hide paid | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadDebtsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.debts = msg.debts
		m.err = nil
		m.refreshTable()
		return m, nil

	case paymentSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error recording payment: %v", msg.err)
		} else {
			m.status = "Payment recorded"
		}
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadDebtsCmd()

	case deleteDoneMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting debt: %v", msg.err)
		} else {
			m.status = "Debt deleted"
		}
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadDebtsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStatePayment:
		return m.updatePayment(msg)
	case listStateConfirmRollover:
		return m.updateConfirmRollover(msg)
	case listStateHistory:
		return m.updateHistory(msg)
	case listStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadDebtsCmd()
		case "p":
			return m.enterPaymentMode()
		case "v":
			return m.enterHistoryMode()
		case "x":
			return m.enterDeleteMode()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 4
			m.applyFilter()
			return m, m.loadDebtsCmd()
		case "h":
			m.hidePaid = !m.hidePaid
			m.applyFilter()
			return m, m.loadDebtsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ListModel) selectedDebt() *debt.Debt {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.debts) {
		return nil
	}
	return m.debts[idx]
}

func (m ListModel) enterPaymentMode() (tea.Model, tea.Cmd) {
	d := m.selectedDebt()
	if d == nil {
		return m, nil
	}

	m.formPrincipal = ""
	m.formInterest = ""
	m.formNewDueDate = ""
	m.status = ""

	return m.buildPaymentForm()
}

// buildPaymentForm (re)opens the payment form over the current bindings, so a
// rejected submission keeps what the user typed.
func (m ListModel) buildPaymentForm() (tea.Model, tea.Cmd) {
	d := m.selectedDebt()
	if d == nil {
		return m, nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("principal").
				Title(fmt.Sprintf("Principal payment (remaining %s)", FormatAmount(d.RemainingPrincipal()))).
				Placeholder("0").
				Value(&m.formPrincipal).
				Validate(validateAmount),

			huh.NewInput().
				Key("interest").
				Title(fmt.Sprintf("Interest payment (remaining %s)", FormatAmount(d.RemainingInterest()))).
				Placeholder("0").
				Value(&m.formInterest).
				Validate(validateAmount),

			huh.NewInput().
				Key("new_due_date").
				Title("New due date (required when paying interest only)").
				Placeholder("YYYY-MM-DD").
				Value(&m.formNewDueDate).
				Validate(validateOptionalDate),
		),
	).WithWidth(52).WithShowHelp(false)

	m.state = listStatePayment
	m.table.Blur()
	return m, m.form.Init()
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}

	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}

	return nil
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}

	return nil
}

func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (m ListModel) updatePayment(msg tea.Msg) (tea.Model, tea.Cmd) {
	// One write in flight at a time.
	if m.saving {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	// Read back through the form: the model is copied on every update, so
	// the bound fields of this copy can be stale.
	m.formPrincipal = m.form.GetString("principal")
	m.formInterest = m.form.GetString("interest")
	m.formNewDueDate = m.form.GetString("new_due_date")

	principal := parseAmount(m.formPrincipal)
	interest := parseAmount(m.formInterest)

	interestOnly := principal.IsZero() && interest.IsPositive()
	if interestOnly && strings.TrimSpace(m.formNewDueDate) == "" {
		m.status = "A new due date is required when paying interest only"
		return m.buildPaymentForm()
	}

	if principal.IsZero() && interest.IsZero() {
		m.status = "Enter a principal or interest amount"
		return m.buildPaymentForm()
	}

	if interestOnly {
		return m.enterRolloverConfirm()
	}

	m.saving = true
	return m, m.savePaymentCmd()
}

func (m ListModel) enterRolloverConfirm() (tea.Model, tea.Cmd) {
	d := m.selectedDebt()
	if d == nil {
		return m, nil
	}

	m.confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Interest-only payment").
				Description(fmt.Sprintf(
					"Principal of %s stays outstanding and the due date moves to %s.\nAnother interest increment of %s will accrue for the next cycle.",
					FormatAmount(d.RemainingPrincipal()), m.formNewDueDate, FormatAmount(d.InterestAmount),
				)).
				Affirmative("Record it").
				Negative("Cancel").
				Value(&m.confirmed),
		),
	).WithWidth(52).WithShowHelp(false)

	m.state = listStateConfirmRollover
	return m, m.form.Init()
}

func (m ListModel) updateConfirmRollover(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.form.GetBool("confirm") {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	m.saving = true
	return m, m.savePaymentCmd()
}

func (m ListModel) enterHistoryMode() (tea.Model, tea.Cmd) {
	d := m.selectedDebt()
	if d == nil {
		return m, nil
	}

	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Principal", Width: 12},
		{Title: "Interest", Width: 12},
		{Title: "Total", Width: 12},
		{Title: "Principal After", Width: 15},
		{Title: "Notes", Width: 40},
	}

	// Newest first for display; storage order stays chronological.
	rows := make([]table.Row, 0, len(d.Payments))
	for i := len(d.Payments) - 1; i >= 0; i-- {
		p := d.Payments[i]
		rows = append(rows, table.Row{
			FormatDate(p.Date),
			FormatAmount(p.PrincipalPayment),
			FormatAmount(p.InterestPayment),
			FormatAmount(p.TotalPayment),
			FormatAmount(p.RemainingPrincipal),
			p.Notes,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	m.historyTable = t
	m.state = listStateHistory
	m.table.Blur()
	return m, nil
}

func (m ListModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.table.Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.historyTable, cmd = m.historyTable.Update(msg)
	return m, cmd
}

func (m ListModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	d := m.selectedDebt()
	if d == nil {
		return m, nil
	}

	m.confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete debt for %s?", d.BorrowerName)).
				Description("All of its payment history goes with it.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.confirmed),
		),
	).WithWidth(52).WithShowHelp(false)

	m.state = listStateConfirmDelete
	m.table.Blur()
	return m, m.form.Init()
}

func (m ListModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.form.GetBool("confirm") {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	m.saving = true
	return m, m.deleteCmd()
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading debts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == listStateHistory {
		d := m.selectedDebt()
		title := "Payments"
		if d != nil {
			title = fmt.Sprintf("Payments for %s (remaining %s)",
				d.BorrowerName, FormatAmount(d.RemainingPrincipal().Add(d.RemainingInterest())))
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().PaddingBottom(1).Render(title),
				lipgloss.NewStyle().
					BorderStyle(lipgloss.NormalBorder()).
					BorderForeground(lipgloss.Color("240")).
					Render(m.historyTable.View()),
			),
		)
	}

	statusLabels := []string{"All", "Unpaid", "Partial", "Paid"}

	hidePaidLabel := "off"
	if m.hidePaid {
		hidePaidLabel = "on"
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [h] Hide paid: %s",
		activeStyle(statusLabels[m.statusFilterIdx]),
		activeStyle(hidePaidLabel),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.form != nil && (m.state == listStatePayment || m.state == listStateConfirmRollover || m.state == listStateConfirmDelete) {
		title := "Record Payment"
		if m.state == listStateConfirmDelete {
			title = "Delete Debt"
		}

		borrower := ""
		if d := m.selectedDebt(); d != nil {
			borrower = d.BorrowerName
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(56).
			Render(
				fmt.Sprintf("%s\n\nBorrower: %s\n\n%s", title, borrower, m.form.View()),
			)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ListModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		s := debt.StatusUnpaid
		m.filter.Status = &s
	case 2:
		s := debt.StatusPartial
		m.filter.Status = &s
	case 3:
		s := debt.StatusPaid
		m.filter.Status = &s
	default:
		m.filter.Status = nil
	}

	m.filter.HidePaid = m.hidePaid
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.debts))

	today := time.Now()

	for _, d := range m.debts {
		overdue := ""
		if d.IsOverdue(today) && d.Status() != debt.StatusPaid {
			overdue = "overdue"
		}

		rows = append(rows, table.Row{
			d.BorrowerName,
			FormatDate(d.DueDate),
			FormatAmount(d.RemainingPrincipal()),
			FormatAmount(d.RemainingInterest()),
			string(d.Status()),
			overdue,
		})
	}

	m.table.SetRows(rows)
}

type loadListMsg struct {
	debts []*debt.Debt
	err   error
}

func (m ListModel) loadDebtsCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		debts, err := m.debtService.List(ctx, filter)
		return loadListMsg{debts: debts, err: err}
	}
}

type paymentSavedMsg struct {
	err error
}

func (m ListModel) savePaymentCmd() tea.Cmd {
	d := m.selectedDebt()
	if d == nil {
		return nil
	}

	params := debt.RecordPaymentParams{
		Principal: parseAmount(m.formPrincipal),
		Interest:  parseAmount(m.formInterest),
	}

	if s := strings.TrimSpace(m.formNewDueDate); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			params.NewDueDate = &t
		}
	}

	id := d.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, _, err := m.debtService.RecordPayment(ctx, id, params)
		return paymentSavedMsg{err: err}
	}
}

type deleteDoneMsg struct {
	err error
}

func (m ListModel) deleteCmd() tea.Cmd {
	d := m.selectedDebt()
	if d == nil {
		return nil
	}

	id := d.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.debtService.Delete(ctx, id)
		return deleteDoneMsg{err: err}
	}
}
