package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/landed/internal/dashboard"
)

type DashboardModel struct {
	CommonModel
	service *dashboard.Service

	stats   dashboard.Stats
	loading bool
	err     error
}

func NewDashboardModel(svc *dashboard.Service) DashboardModel {
	return DashboardModel{service: svc, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}

	case statsMsg:
		m.loading = false
		m.stats = msg.stats
		m.err = msg.err
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return pageStyle.Render("Loading...")
	}

	if m.err != nil {
		return page(m.Title(), errorStyle.Render(fmt.Sprintf("Error: %v", m.err)), "", m.ShortHelp())
	}

	if m.stats.Empty() {
		return page(m.Title(),
			"Nothing here yet.\n\nAdd an invoice and a freight cost, then generate the worksheet.",
			"", m.ShortHelp())
	}

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		statBox("Invoices", fmt.Sprint(m.stats.InvoiceCount), FormatAmount(m.stats.TotalInvoiceValue)),
		statBox("Freight Costs", fmt.Sprint(m.stats.FreightCount), FormatAmount(m.stats.TotalFreightCost)),
		statBox("Worksheet Rows", fmt.Sprint(m.stats.LandedCostRows), FormatAmount(m.stats.TotalLandedCost)),
	)

	var recent strings.Builder
	recent.WriteString("Recent invoices\n")

	if len(m.stats.Recent) == 0 {
		recent.WriteString("  none\n")
	}

	for _, inv := range m.stats.Recent {
		fmt.Fprintf(&recent, "  %s  %-12s %-24s %s %s\n",
			FormatDate(inv.Date), inv.InvoiceNumber, inv.Supplier, FormatAmount(inv.TotalValue()), inv.Currency)
	}

	return page(m.Title(), lipgloss.JoinVertical(lipgloss.Left, boxes, "", recent.String()), "", m.ShortHelp())
}

func statBox(label, count, total string) string {
	return statBoxStyle.Render(fmt.Sprintf("%s\n%s\nTotal %s", titleStyle.Render(label), count, total))
}

type statsMsg struct {
	stats dashboard.Stats
	err   error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		stats, err := m.service.Stats(ctx)

		return statsMsg{stats: stats, err: err}
	}
}
