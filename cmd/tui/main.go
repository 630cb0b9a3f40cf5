package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/civil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/cofre/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/cofre/internal/category"
	categoryLocal "github.com/MrJamesThe3rd/cofre/internal/category/local"
	categoryStore "github.com/MrJamesThe3rd/cofre/internal/category/store"
	"github.com/MrJamesThe3rd/cofre/internal/config"
	"github.com/MrJamesThe3rd/cofre/internal/database"
	"github.com/MrJamesThe3rd/cofre/internal/device"
	"github.com/MrJamesThe3rd/cofre/internal/installment"
	"github.com/MrJamesThe3rd/cofre/internal/license"
	"github.com/MrJamesThe3rd/cofre/internal/localstore"
	"github.com/MrJamesThe3rd/cofre/internal/observability"
	"github.com/MrJamesThe3rd/cofre/internal/resilience"
	"github.com/MrJamesThe3rd/cofre/internal/supabase"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
	txLocal "github.com/MrJamesThe3rd/cofre/internal/transaction/local"
	txStore "github.com/MrJamesThe3rd/cofre/internal/transaction/store"
)

type model struct {
	txService          *transaction.Service
	installmentService *installment.Service
	userID             string
	licensed           license.Result

	currentView View
	width       int
	height      int

	licenseView view.LicenseModel
	formView    view.FormModel
	listView    view.ListModel
}

type View int

const (
	ViewLicense View = 0
	ViewMenu    View = 1
	ViewForm    View = 2
	ViewList    View = 3
)

func (m model) Init() tea.Cmd {
	return m.licenseView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewForm
				m.formView = view.NewFormModel(m.installmentService, m.userID, civil.DateOf(time.Now()))

				return m, m.formView.Init()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.txService, m.userID)

				return m, tea.Batch(m.listView.Init(), m.resize())
			}
		}
	case view.LicenseAcceptedMsg:
		m.licensed = msg.Result
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLicense:
		var newModel tea.Model
		newModel, cmd = m.licenseView.Update(msg)
		m.licenseView = newModel.(view.LicenseModel)
	case ViewForm:
		var newModel tea.Model
		newModel, cmd = m.formView.Update(msg)
		m.formView = newModel.(view.FormModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	}

	return m, cmd
}

// resize replays the last known window size to a freshly built view.
func (m model) resize() tea.Cmd {
	if m.width == 0 {
		return nil
	}

	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}

	return func() tea.Msg { return size }
}

func (m model) View() string {
	switch m.currentView {
	case ViewLicense:
		return m.licenseView.View()
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Cofre\n" +
				lipgloss.NewStyle().Faint(true).Render(m.licensed.Message) + "\n\n" +
				"1. New Transaction\n" +
				"2. Transactions\n\n" +
				"q. Quit",
		)
	case ViewForm:
		return m.formView.View() + "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.formView.ShortHelp())
	case ViewList:
		return m.listView.View() + "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.listView.ShortHelp())
	}

	return "Unknown View"
}

type backend struct {
	transactions transaction.Repository
	categories   category.Repository
	close        func() error
}

// openBackend picks the embedded SQLite store in local mode and Postgres
// otherwise.
func openBackend(ctx context.Context, cfg *config.Config, dataDir string, logger *zap.Logger, metrics *observability.Metrics) (*backend, error) {
	if cfg.Local.Enabled {
		store, err := localstore.Open(ctx, cfg.SQLitePath(dataDir), logger, metrics)
		if err != nil {
			return nil, err
		}

		return &backend{
			transactions: txLocal.New(store, logger),
			categories:   categoryLocal.New(store),
			close:        store.Close,
		}, nil
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &backend{
		transactions: txStore.New(db),
		categories:   categoryStore.New(db),
		close:        db.Close,
	}, nil
}

func licenseRepository(cfg *config.Config, logger *zap.Logger) license.Repository {
	client := supabase.NewClient(
		&http.Client{Timeout: cfg.Resilience.HTTPTimeout},
		cfg.Supabase.URL,
		cfg.Supabase.AnonKey,
		resilience.NewCircuitBreaker("supabase"),
		resilience.Config{
			MaxRetries:     cfg.Resilience.MaxRetries,
			InitialBackoff: cfg.Resilience.InitialBackoff,
		},
		logger,
	)

	return supabase.NewLicenseRepository(client)
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dataDir := cfg.Local.DataDir
	if dataDir == "" {
		if dataDir, err = device.DefaultDir(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logger, err := observability.NewFileLogger(cfg.App.LogLevel, cfg.LogPath(dataDir))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	zap.ReplaceGlobals(logger)

	ctx := context.Background()
	devices := device.NewStore(dataDir)

	var machineID, savedKey string

	g := new(errgroup.Group)
	g.Go(func() (err error) {
		machineID, err = devices.MachineID()
		return err
	})
	g.Go(func() (err error) {
		savedKey, err = devices.LicenseKey()
		return err
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("loading device state: %w", err)
	}

	metrics := observability.NewMetrics()

	store, err := openBackend(ctx, cfg, dataDir, logger, metrics)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() { _ = store.close() }()

	userID := cfg.Local.UserID
	if userID == "" {
		userID = machineID
	}

	var (
		txService          = transaction.NewService(store.transactions)
		categoryService    = category.NewService(store.categories)
		installmentService = installment.NewService(categoryService, txService, metrics, logger)
		licenseService     = license.NewService(licenseRepository(cfg, logger), metrics, logger)
	)

	logger.Info("starting tui",
		zap.Bool("local", cfg.Local.Enabled),
		zap.String("data_dir", dataDir),
	)

	m := model{
		txService:          txService,
		installmentService: installmentService,
		userID:             userID,
		currentView:        ViewLicense,
		licenseView:        view.NewLicenseModel(licenseService, devices, machineID, savedKey),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "cofre:", err)
		os.Exit(1)
	}
}
