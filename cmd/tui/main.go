package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/wealthfolio/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	accountStore "github.com/MrJamesThe3rd/wealthfolio/internal/account/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/wealthfolio/internal/budget/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/category"
	categoryStore "github.com/MrJamesThe3rd/wealthfolio/internal/category/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/config"
	"github.com/MrJamesThe3rd/wealthfolio/internal/dashboard"
	"github.com/MrJamesThe3rd/wealthfolio/internal/database"
	"github.com/MrJamesThe3rd/wealthfolio/internal/export"
	"github.com/MrJamesThe3rd/wealthfolio/internal/fx"
	"github.com/MrJamesThe3rd/wealthfolio/internal/importer"
	"github.com/MrJamesThe3rd/wealthfolio/internal/insurance"
	insuranceStore "github.com/MrJamesThe3rd/wealthfolio/internal/insurance/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/wealthfolio/internal/ledger/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/logger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/wealthfolio/internal/matching/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/portfolio"
	portfolioStore "github.com/MrJamesThe3rd/wealthfolio/internal/portfolio/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/savings"
	savingsStore "github.com/MrJamesThe3rd/wealthfolio/internal/savings/store"
)

type services struct {
	ledger    *ledger.Service
	accounts  *account.Service
	category  *category.Service
	matching  *matching.Service
	importer  *importer.Service
	export    *export.Service
	dashboard *dashboard.Service
}

type model struct {
	userID string
	svc    services

	currentView View

	dashboardView view.DashboardModel
	listView      view.ListModel
	entryView     view.EntryModel
	importView    view.ImportModel
	reviewView    view.ReviewModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewList      View = 2
	ViewEntry     View = 3
	ViewImport    View = 4
	ViewReview    View = 5
	ViewExport    View = 6
)

func newServices(cfg *config.Config, db *sql.DB) services {
	rates := fx.NewClient(cfg.FX.URL, cfg.FX.Fallback, cfg.FX.CacheTTL)

	var (
		accountService   = account.NewService(accountStore.New(db))
		ledgerService    = ledger.NewService(ledgerStore.New(db))
		portfolioService = portfolio.NewService(portfolioStore.New(db), cfg.FX.Fallback)
		savingsService   = savings.NewService(savingsStore.New(db), cfg.FX.Fallback)
		insuranceService = insurance.NewService(insuranceStore.New(db))
		budgetService    = budget.NewService(budgetStore.New(db))
		matchingService  = matching.NewService(matchingStore.New(db))
	)

	dashboardService := dashboard.NewService(dashboard.Deps{
		Accounts: accountService,
		Stocks:   portfolioService,
		Deposits: savingsService,
		Policies: insuranceService,
		Entries:  ledgerService,
		Budgets:  budgetService,
		Rates:    rates,
	})

	return services{
		ledger:    ledgerService,
		accounts:  accountService,
		category:  category.NewService(categoryStore.New(db)),
		matching:  matchingService,
		importer:  importer.NewService(matchingService, ledgerService),
		export:    export.NewService(ledgerService),
		dashboard: dashboardService,
	}
}

func initialModel(userID string, svc services) model {
	return model{
		userID:      userID,
		svc:         svc,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.userID, m.svc.dashboard)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.userID, m.svc.ledger)

				return m, m.listView.Init()
			case "3":
				m.currentView = ViewEntry
				m.entryView = view.NewEntryModel(m.userID, m.svc.ledger, m.svc.accounts, m.svc.category)

				return m, m.entryView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.userID, m.svc.ledger, m.svc.accounts, m.svc.importer)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.userID, m.svc.ledger, m.svc.matching)

				return m, m.reviewView.Init()
			case "6":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.userID, m.svc.export)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewEntry:
		var newModel tea.Model
		newModel, cmd = m.entryView.Update(msg)
		m.entryView = newModel.(view.EntryModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) current() view.View {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboardView
	case ViewList:
		return m.listView
	case ViewEntry:
		return m.entryView
	case ViewImport:
		return m.importView
	case ViewReview:
		return m.reviewView
	case ViewExport:
		return m.exportView
	}

	return nil
}

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			"Wealthfolio TUI\n\n" +
				"1. Dashboard\n" +
				"2. Ledger\n" +
				"3. New Entry\n" +
				"4. Import Statement\n" +
				"5. Categorize Entries\n" +
				"6. Export Ledger\n\n" +
				"q. Quit",
		)
	}

	v := m.current()
	if v == nil {
		return "Unknown View"
	}

	title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(v.Title())
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(v.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, v.View(), help)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(cfg.TUI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.TUI.LogFile, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger.InitTo(logFile, cfg.App.LogLevel)

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
			os.Exit(1)
		}
	}

	slog.Info("starting tui", "user_id", cfg.TUI.UserID)

	p := tea.NewProgram(initialModel(cfg.TUI.UserID, newServices(cfg, db)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		fmt.Fprintf(os.Stderr, "failed to run TUI: %v\n", err)
		os.Exit(1)
	}
}
