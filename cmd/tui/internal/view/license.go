package view

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cofre/internal/license"
)

type Validator interface {
	Check(ctx context.Context, key, machineID string) license.Result
}

type KeySaver interface {
	SaveLicenseKey(key string) error
}

// LicenseAcceptedMsg is sent once a key has been validated for this machine.
type LicenseAcceptedMsg struct {
	Key    string
	Result license.Result
}

type licenseCheckedMsg struct {
	key    string
	result license.Result
}

type licenseState int

const (
	licenseStateChecking licenseState = iota
	licenseStateInput
)

// LicenseModel gates the application behind a valid license. A previously
// accepted key is re-checked on start; access is never granted without a
// successful check.
type LicenseModel struct {
	CommonModel
	validator Validator
	keys      KeySaver
	machineID string

	state   licenseState
	form    *huh.Form
	formKey string
	pending string
	message string
}

func NewLicenseModel(validator Validator, keys KeySaver, machineID, savedKey string) LicenseModel {
	m := LicenseModel{
		validator: validator,
		keys:      keys,
		machineID: machineID,
		pending:   savedKey,
		formKey:   savedKey,
	}

	if savedKey == "" {
		m.state = licenseStateInput
		m.form = newLicenseForm(m.formKey)
	}

	return m
}

func (m LicenseModel) Title() string { return "License" }

func (m LicenseModel) ShortHelp() string {
	return "Enter: validate | Ctrl+C: quit"
}

func (m LicenseModel) Init() tea.Cmd {
	if m.state == licenseStateChecking {
		return m.checkCmd(m.pending)
	}

	return m.form.Init()
}

func (m LicenseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(licenseCheckedMsg); ok {
		if !msg.result.OK {
			m.message = msg.result.Message
			m.state = licenseStateInput
			m.formKey = msg.key
			m.form = newLicenseForm(m.formKey)

			return m, m.form.Init()
		}

		key := msg.key
		result := msg.result

		return m, func() tea.Msg {
			// Validation already succeeded; a failed save only means the key
			// is asked for again next start.
			_ = m.keys.SaveLicenseKey(key)
			return LicenseAcceptedMsg{Key: key, Result: result}
		}
	}

	if m.state != licenseStateInput || m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = licenseStateChecking
	m.formKey = m.form.GetString("key")
	m.pending = license.NormalizeKey(m.formKey)

	return m, m.checkCmd(m.pending)
}

func (m LicenseModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Cofre"))
	b.WriteString("\n\n")

	if m.message != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(m.message))
		b.WriteString("\n\n")
	}

	switch m.state {
	case licenseStateChecking:
		b.WriteString("Checking license...")
	case licenseStateInput:
		b.WriteString(m.form.View())
	}

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func newLicenseForm(initial string) *huh.Form {
	key := initial

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("key").
				Title("License key").
				Placeholder("XXXX-XXXX-XXXX-XXXX").
				Value(&key).
				Validate(func(s string) error {
					if len(strings.ReplaceAll(strings.TrimSpace(s), "-", "")) != 16 {
						return fmt.Errorf("a license key has 16 characters")
					}

					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LicenseModel) checkCmd(key string) tea.Cmd {
	validator := m.validator
	machineID := m.machineID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), networkTimeout)
		defer cancel()

		return licenseCheckedMsg{key: key, result: validator.Check(ctx, key, machineID)}
	}
}
