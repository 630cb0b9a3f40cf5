package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cofre/internal/draft"
	"github.com/MrJamesThe3rd/cofre/internal/installment"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

type Submitter interface {
	Submit(ctx context.Context, d draft.Draft, userID string) ([]*transaction.Transaction, error)
}

const (
	fieldDescription = iota
	fieldTotal
	fieldInstallment
	fieldInstallments
	fieldType
	fieldCategory
	fieldStartDate
	numFields
)

var fieldLabels = [numFields]string{
	fieldDescription:  "Description",
	fieldTotal:        "Total",
	fieldInstallment:  "Per installment",
	fieldInstallments: "Installments",
	fieldType:         "Type",
	fieldCategory:     "Category",
	fieldStartDate:    "First due date",
}

const previewRows = 12

// FormModel composes a new transaction. Every keystroke in an amount field or
// the installment count goes through the draft reconciler, so the derived
// amount and the schedule preview are always current.
type FormModel struct {
	CommonModel
	submitter Submitter
	userID    string

	draft  draft.Draft
	inputs [numFields]textinput.Model
	focus  int
	saving bool
	status string
}

func NewFormModel(submitter Submitter, userID string, today civil.Date) FormModel {
	m := FormModel{
		submitter: submitter,
		userID:    userID,
		draft:     draft.New(today),
	}

	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 64
		m.inputs[i] = in
	}

	m.inputs[fieldTotal].Placeholder = "0,00"
	m.inputs[fieldInstallment].Placeholder = "0,00"
	m.inputs[fieldCategory].Placeholder = "first of its type, or Geral"
	m.inputs[fieldInstallments].CharLimit = 3
	m.inputs[fieldInstallments].SetValue(strconv.Itoa(m.draft.InstallmentCount))
	m.inputs[fieldType].SetValue(string(m.draft.Type))
	m.inputs[fieldStartDate].SetValue(today.String())
	m.inputs[fieldStartDate].Placeholder = "YYYY-MM-DD"
	m.inputs[fieldDescription].Focus()

	return m
}

func (m FormModel) Title() string { return "New Transaction" }

func (m FormModel) ShortHelp() string {
	return "Tab/Shift+Tab: move | Space: toggle type | Ctrl+S: save | Esc: back"
}

func (m FormModel) Draft() draft.Draft {
	return m.draft
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

type formSavedMsg struct {
	count int
	err   error
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		fresh := NewFormModel(m.submitter, m.userID, m.draft.StartDate)
		fresh.CommonModel = m.CommonModel
		fresh.status = fmt.Sprintf("Saved %d transaction(s).", msg.count)

		return fresh, nil

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "tab", "down":
			cmd := m.moveFocus(1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.moveFocus(-1)
			return m, cmd
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focus == fieldStartDate {
				return m.submit()
			}

			cmd := m.moveFocus(1)

			return m, cmd
		}

		if m.focus == fieldType {
			if s := msg.String(); s == " " || s == "left" || s == "right" {
				m.toggleType()
			}

			return m, nil
		}
	}

	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if m.inputs[m.focus].Value() != before {
		m.sync(m.focus)
	}

	return m, cmd
}

// sync folds the focused input back into the draft and refreshes whichever
// amount field the reconciler derived.
func (m *FormModel) sync(field int) {
	value := m.inputs[field].Value()

	switch field {
	case fieldDescription:
		m.draft.Description = value
	case fieldTotal:
		m.draft = draft.OnAmountEdited(value, draft.ModeTotal, m.draft)
		m.refreshDerived()
	case fieldInstallment:
		m.draft = draft.OnAmountEdited(value, draft.ModeInstallment, m.draft)
		m.refreshDerived()
	case fieldInstallments:
		m.draft = draft.OnInstallmentCountChanged(draft.ParseCount(value), m.draft)
		m.refreshDerived()
	case fieldCategory:
		m.draft.Category = strings.TrimSpace(value)
	case fieldStartDate:
		if d, err := civil.ParseDate(strings.TrimSpace(value)); err == nil {
			m.draft.StartDate = d
		}
	}
}

// refreshDerived shows the derived amount whenever the driving field holds a
// number, zero included. A field with no digits leaves the other one as is.
func (m *FormModel) refreshDerived() {
	switch m.draft.InputMode {
	case draft.ModeTotal:
		if hasDigits(m.inputs[fieldTotal].Value()) {
			m.inputs[fieldInstallment].SetValue(centsText(m.draft.InstallmentAmount))
		}
	case draft.ModeInstallment:
		if hasDigits(m.inputs[fieldInstallment].Value()) {
			m.inputs[fieldTotal].SetValue(centsText(m.draft.TotalAmount))
		}
	}
}

func hasDigits(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return r < unicode.MaxASCII && unicode.IsDigit(r)
	})
}

func (m *FormModel) toggleType() {
	if m.draft.Type == transaction.TypeExpense {
		m.draft.Type = transaction.TypeIncome
	} else {
		m.draft.Type = transaction.TypeExpense
	}

	m.inputs[fieldType].SetValue(string(m.draft.Type))
}

func (m *FormModel) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + numFields) % numFields

	return m.inputs[m.focus].Focus()
}

func (m FormModel) submit() (tea.Model, tea.Cmd) {
	if err := m.check(); err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.saving = true
	m.status = "Saving..."

	d := m.draft
	userID := m.userID
	submitter := m.submitter

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := submitter.Submit(ctx, d, userID)

		return formSavedMsg{count: len(txs), err: err}
	}
}

func (m FormModel) check() error {
	if strings.TrimSpace(m.draft.Description) == "" {
		return fmt.Errorf("description cannot be empty")
	}

	if m.draft.TotalAmount <= 0 && m.draft.InstallmentAmount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}

	if _, err := civil.ParseDate(strings.TrimSpace(m.inputs[fieldStartDate].Value())); err != nil {
		return fmt.Errorf("first due date must be YYYY-MM-DD")
	}

	return nil
}

func (m FormModel) View() string {
	label := lipgloss.NewStyle().Width(18)
	focused := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Width(18)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("New Transaction"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		style := label
		if i == m.focus {
			style = focused
		}

		fmt.Fprintf(&b, "%s %s\n", style.Render(fieldLabels[i]), m.inputs[i].View())
	}

	form := b.String()
	if m.status != "" {
		form += "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, form, m.previewView()),
	)
}

func (m FormModel) previewView() string {
	if m.draft.TotalAmount <= 0 && m.draft.InstallmentAmount <= 0 {
		return ""
	}

	count := m.draft.Count()
	amount := FormatAmount(installment.PerInstallmentAmount(m.draft))

	var b strings.Builder

	fmt.Fprintf(&b, "Schedule (%d)\n\n", count)

	for i := range min(count, previewRows) {
		fmt.Fprintf(&b, "%s  %s\n", FormatDate(installment.AddMonths(m.draft.StartDate, i)), amount)
	}

	if count > previewRows {
		fmt.Fprintf(&b, "... %d more\n", count-previewRows)
	}

	return lipgloss.NewStyle().
		MarginLeft(4).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(b.String())
}

// centsText shows a derived amount the way a user would type it. Reading it
// back through the reconciler yields the same cents.
func centsText(cents int64) string {
	return fmt.Sprintf("%d,%02d", cents/100, cents%100)
}
