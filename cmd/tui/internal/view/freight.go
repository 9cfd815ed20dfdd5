package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/landed/internal/freight"
)

type freightState int

const (
	freightStateBrowse freightState = iota
	freightStateForm
)

// freightFields is heap allocated so huh keeps writing into the same values
// while the model is copied through Update.
type freightFields struct {
	shipmentType  freight.ShipmentType
	origin        string
	destination   string
	weight        string
	volume        string
	rate          string
	fuel          string
	insurance     string
	handling      string
	documentation string
}

func (f *freightFields) components() freight.Components {
	amount := func(s string) float64 {
		v, _ := parseAmount(s)
		return v
	}

	return freight.Components{
		ShipmentType:  f.shipmentType,
		Origin:        f.origin,
		Destination:   f.destination,
		Weight:        amount(f.weight),
		Volume:        amount(f.volume),
		FreightRate:   amount(f.rate),
		FuelSurcharge: amount(f.fuel),
		Insurance:     amount(f.insurance),
		Handling:      amount(f.handling),
		Documentation: amount(f.documentation),
	}
}

type FreightModel struct {
	CommonModel
	service *freight.Service

	state  freightState
	table  table.Model
	costs  []*freight.Cost
	form   *huh.Form
	fields *freightFields
	status string
}

func NewFreightModel(svc *freight.Service) FreightModel {
	return FreightModel{
		service: svc,
		table: newTable([]table.Column{
			{Title: "Created", Width: 12},
			{Title: "Type", Width: 14},
			{Title: "Route", Width: 28},
			{Title: "Weight", Width: 10},
			{Title: "Total", Width: 12},
		}, 12),
	}
}

func (m FreightModel) Title() string { return "Freight Costs" }

func (m FreightModel) ShortHelp() string {
	if m.state == freightStateForm {
		return "Enter: next | Esc: cancel"
	}

	return "Esc: back | n: new | d: delete"
}

func (m FreightModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m FreightModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case freightListMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.costs = msg.costs
		m.refreshTable()

		return m, nil

	case freightSavedMsg:
		m.state = freightStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.status = okStyle.Render(msg.status)
		}

		return m, m.loadCmd()
	}

	if m.state == freightStateForm {
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m FreightModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			m.fields = &freightFields{shipmentType: freight.ShipmentSea}
			m.form = m.buildForm()
			m.state = freightStateForm
			m.status = ""
			m.table.Blur()

			return m, m.form.Init()
		case "d":
			if c := m.selected(); c != nil {
				return m, m.deleteCmd(c)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m FreightModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = freightStateBrowse
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

	return m, m.saveCmd(m.fields.components())
}

func (m FreightModel) buildForm() *huh.Form {
	options := make([]huh.Option[freight.ShipmentType], 0, len(freight.ShipmentTypes))
	for _, t := range freight.ShipmentTypes {
		options = append(options, huh.NewOption(t.Label(), t))
	}

	f := m.fields

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[freight.ShipmentType]().Title("Shipment Type").Options(options...).Value(&f.shipmentType),
			huh.NewInput().Title("Origin").Value(&f.origin),
			huh.NewInput().Title("Destination").Value(&f.destination),
			huh.NewInput().Title("Weight (kg)").Value(&f.weight).Validate(validateNonNegative),
			huh.NewInput().Title("Volume (m³)").Value(&f.volume).Validate(validateNonNegative),
		),
		huh.NewGroup(
			huh.NewInput().Title("Freight Rate (per kg)").Value(&f.rate).Validate(validateNonNegative),
			huh.NewInput().Title("Fuel Surcharge").Value(&f.fuel).Validate(validateNonNegative),
			huh.NewInput().Title("Insurance").Value(&f.insurance).Validate(validateNonNegative),
			huh.NewInput().Title("Handling").Value(&f.handling).Validate(validateNonNegative),
			huh.NewInput().Title("Documentation").Value(&f.documentation).Validate(validateNonNegative),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m FreightModel) View() string {
	if m.state == freightStateForm {
		total := FormatAmount(m.fields.components().TotalCost())
		return page(m.Title(), m.form.View(), "Total cost: "+total, m.ShortHelp())
	}

	if len(m.costs) == 0 {
		return page(m.Title(), "No freight costs yet.", m.status, m.ShortHelp())
	}

	return page(m.Title(), m.table.View(), m.status, m.ShortHelp())
}

func (m *FreightModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.costs))
	for _, c := range m.costs {
		rows = append(rows, table.Row{
			FormatDate(c.CreatedAt),
			c.ShipmentType.Label(),
			route(c.Origin, c.Destination),
			FormatAmount(c.Weight),
			FormatAmount(c.TotalCost()),
		})
	}

	m.table.SetRows(rows)
}

func (m FreightModel) selected() *freight.Cost {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.costs) {
		return nil
	}

	return m.costs[idx]
}

func route(origin, destination string) string {
	if origin == "" && destination == "" {
		return "-"
	}

	return origin + " → " + destination
}

type freightListMsg struct {
	costs []*freight.Cost
	err   error
}

type freightSavedMsg struct {
	status string
	err    error
}

func (m FreightModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		costs, err := m.service.List(ctx)

		return freightListMsg{costs: costs, err: err}
	}
}

func (m FreightModel) saveCmd(comp freight.Components) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		c, err := m.service.Add(ctx, comp)
		if err != nil {
			return freightSavedMsg{err: err}
		}

		return freightSavedMsg{status: fmt.Sprintf("Saved %s, total %s", c.ShipmentType.Label(), FormatAmount(c.TotalCost()))}
	}
}

func (m FreightModel) deleteCmd(c *freight.Cost) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		return freightSavedMsg{status: "Freight cost deleted", err: m.service.Delete(ctx, c.ID)}
	}
}
