package view

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

type listState int

const (
	listStateBrowse listState = iota
	listStatePay
	listStateDelete
)

var statusFilters = []struct {
	label  string
	status *transaction.Status
}{
	{"All", nil},
	{"Pending", new(transaction.StatusPending)},
	{"Completed", new(transaction.StatusCompleted)},
}

type ListModel struct {
	CommonModel
	txService *transaction.Service
	userID    string
	today     func() civil.Date

	state listState
	table table.Model
	txs   []*transaction.Transaction
	form  *huh.Form

	statusFilterIdx int
	timeframe       Timeframe

	filter  transaction.ListFilter
	loading bool
	err     error
	status  string
}

func NewListModel(txSvc *transaction.Service, userID string) ListModel {
	columns := []table.Column{
		{Title: "Due", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 14},
		{Title: "Paid", Width: 14},
		{Title: "Description", Width: 36},
		{Title: "Category", Width: 14},
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
		txService: txSvc,
		userID:    userID,
		today:     func() civil.Date { return civil.DateOf(time.Now()) },
		table:     t,
		filter:    transaction.ListFilter{UserID: userID},
		loading:   true,
	}
}

func (m ListModel) Title() string { return "Transactions" }

func (m ListModel) ShortHelp() string {
	if m.state != listStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | p: pay | x: delete | s: status filter | d: date filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(5, msg.Height-10))

		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStatePay, listStateDelete:
		return m.updateForm(msg)
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
			return m, m.loadTxsCmd()
		case "p":
			return m.enterPayMode()
		case "x":
			return m.enterDeleteMode()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.applyFilter()

			return m, m.loadTxsCmd()
		case "d":
			m.timeframe = m.timeframe.Next()
			m.applyFilter()

			return m, m.loadTxsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m ListModel) enterPayMode() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	if tx.Status == transaction.StatusCompleted {
		m.status = "Already paid."
		return m, nil
	}

	paid := tx.Amount.StringFixed(2)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("paid").
				Title("Amount paid").
				Description("Anything above the booked amount is recorded as interest.").
				Value(&paid).
				Validate(func(s string) error {
					_, err := parsePaid(s)
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStatePay
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	var confirm bool

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Delete this transaction?").
				Description("Other installments of the same purchase are kept.").
				Affirmative("Yes").
				Negative("No").
				Value(&confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == listStatePay {
		return m, m.payCmd(m.form.GetString("paid"))
	}

	if !m.form.GetBool("confirm") {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd()
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [d] Date: %s",
		activeStyle(statusFilters[m.statusFilterIdx].label),
		activeStyle(m.timeframe.String()),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		lipgloss.NewStyle().Faint(true).Render(m.totalsLine()),
	)

	if m.state != listStateBrowse && m.form != nil {
		info := ""
		if tx := m.selected(); tx != nil {
			info = fmt.Sprintf("%s\nDue %s | %s", tx.Description, FormatDate(tx.Date), FormatAmount(tx.Amount))
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(info + "\n\n" + m.form.View())

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

// totalsLine sums the visible rows by type.
func (m ListModel) totalsLine() string {
	income, expense, interest := decimal.Zero, decimal.Zero, decimal.Zero

	for _, tx := range m.txs {
		switch tx.Type {
		case transaction.TypeIncome:
			income = income.Add(tx.Amount)
		case transaction.TypeExpense:
			expense = expense.Add(tx.Amount)
		}

		interest = interest.Add(tx.Interest())
	}

	return fmt.Sprintf("Income %s | Expenses %s | Interest paid %s",
		FormatAmount(income), FormatAmount(expense), FormatAmount(interest))
}

func (m *ListModel) applyFilter() {
	m.filter.Status = statusFilters[m.statusFilterIdx].status
	m.filter.StartDate, m.filter.EndDate = m.timeframe.Range(m.today())
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		paid := ""
		if tx.Status == transaction.StatusCompleted {
			paid = FormatAmount(tx.PaidAmount)
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Status),
			string(tx.Type),
			FormatAmount(tx.Amount),
			paid,
			tx.Description,
			tx.Category,
		})
	}

	m.table.SetRows(rows)
}

// parsePaid accepts both "1.234,56" and "1234.56".
func parsePaid(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a valid amount")
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative")
	}

	return d, nil
}

// Messages

type loadListMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	svc := m.txService
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := svc.List(ctx, filter)

		return loadListMsg{txs: txs, err: err}
	}
}

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) payCmd(raw string) tea.Cmd {
	tx := m.selected()
	if tx == nil {
		return nil
	}

	svc := m.txService

	return func() tea.Msg {
		paid, err := parsePaid(raw)
		if err != nil {
			return listSaveMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if err := svc.ConfirmPayment(ctx, tx.ID, paid); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Payment recorded."}
	}
}

func (m ListModel) deleteCmd() tea.Cmd {
	tx := m.selected()
	if tx == nil {
		return nil
	}

	svc := m.txService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := svc.Delete(ctx, tx.ID); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Deleted."}
	}
}
