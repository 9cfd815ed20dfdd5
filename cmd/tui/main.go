package main

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/landed/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/landed/internal/app"
	"github.com/MrJamesThe3rd/landed/internal/config"
)

type model struct {
	app *app.App
	cfg *config.Config

	currentView View
	views       map[View]view.View
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewInvoices  View = 2
	ViewFreight   View = 3
	ViewWorksheet View = 4
	ViewExport    View = 5
)

func initialModel(a *app.App, cfg *config.Config) model {
	return model{
		app:         a,
		cfg:         cfg,
		currentView: ViewMenu,
		views:       map[View]view.View{},
	}
}

// open builds a fresh screen so every visit starts from current state.
func (m model) open(v View) view.View {
	switch v {
	case ViewDashboard:
		return view.NewDashboardModel(m.app.Dashboard)
	case ViewInvoices:
		return view.NewInvoicesModel(m.app.Invoices, m.app.Classifier, m.cfg.Worksheet.Currency)
	case ViewFreight:
		return view.NewFreightModel(m.app.Freight)
	case ViewWorksheet:
		return view.NewWorksheetModel(m.app.LandedCosts, m.app.Invoices, m.app.Freight, m.cfg.Worksheet.TaxRate)
	case ViewExport:
		return view.NewExportModel(m.app.Export, m.cfg.Export.Dir)
	}

	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1", "2", "3", "4", "5":
				next := View(msg.String()[0] - '0')
				v := m.open(next)
				m.views[next] = v
				m.currentView = next

				return m, v.Init()
			}

			return m, nil
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	current, ok := m.views[m.currentView]
	if !ok {
		return m, nil
	}

	newModel, cmd := current.Update(msg)
	m.views[m.currentView] = newModel.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			m.cfg.App.Name + " TUI\n\n" +
				"1. Dashboard\n" +
				"2. Invoices\n" +
				"3. Freight Costs\n" +
				"4. Landed Cost Worksheet\n" +
				"5. Export Worksheet\n\n" +
				"q. Quit",
		)
	}

	if v, ok := m.views[m.currentView]; ok {
		return v.View()
	}

	return "Unknown View"
}

func main() {
	if err := run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file when asked for.
	var logOut io.Writer = io.Discard
	if path := os.Getenv("LANDED_TUI_LOG"); path != "" {
		f, err := tea.LogToFile(path, "tui")
		if err != nil {
			return err
		}
		defer f.Close()

		logOut = f
	}

	a := app.New(app.NewLogger(cfg, logOut))

	_, err = tea.NewProgram(initialModel(a, cfg), tea.WithAltScreen()).Run()

	return err
}
