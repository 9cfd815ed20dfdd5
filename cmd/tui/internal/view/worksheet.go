package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/freight"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
	"github.com/MrJamesThe3rd/landed/internal/landedcost"
)

type worksheetState int

const (
	worksheetStateBrowse worksheetState = iota
	worksheetStateSelect
	worksheetStateDuty
	worksheetStateClear
)

type runFields struct {
	invoiceID    uuid.UUID
	freightID    uuid.UUID
	taxRate      string
	otherCharges string
	duties       []dutyField
	confirm      bool
}

type dutyField struct {
	hsCode string
	rate   string
}

type WorksheetModel struct {
	CommonModel
	service  *landedcost.Service
	invoices *invoice.Service
	freight  *freight.Service

	defaultTaxRate float64

	state   worksheetState
	table   table.Model
	rows    []landedcost.Item
	summary landedcost.Summary
	form    *huh.Form
	run     *runFields

	invoiceChoices []*invoice.Invoice
	freightChoices []*freight.Cost

	status string
}

func NewWorksheetModel(svc *landedcost.Service, invoices *invoice.Service, costs *freight.Service, defaultTaxRate float64) WorksheetModel {
	return WorksheetModel{
		service:        svc,
		invoices:       invoices,
		freight:        costs,
		defaultTaxRate: defaultTaxRate,
		table: newTable([]table.Column{
			{Title: "Invoice", Width: 12},
			{Title: "Item", Width: 20},
			{Title: "HS Code", Width: 9},
			{Title: "Qty", Width: 6},
			{Title: "Goods", Width: 10},
			{Title: "Freight", Width: 9},
			{Title: "Duty", Width: 9},
			{Title: "Tax", Width: 9},
			{Title: "Other", Width: 8},
			{Title: "Landed", Width: 10},
			{Title: "Unit", Width: 9},
		}, 12),
	}
}

func (m WorksheetModel) Title() string { return "Landed Cost Worksheet" }

func (m WorksheetModel) ShortHelp() string {
	switch m.state {
	case worksheetStateSelect, worksheetStateDuty:
		return "Enter: next | Esc: cancel"
	case worksheetStateClear:
		return "Enter: confirm | Esc: cancel"
	}

	return "Esc: back | g: generate | x: delete row | c: clear all"
}

func (m WorksheetModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m WorksheetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case worksheetMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.rows = msg.rows
		m.summary = landedcost.Summarize(msg.rows)
		m.refreshTable()

		return m, nil

	case choicesMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		if len(msg.invoices) == 0 || len(msg.freight) == 0 {
			m.status = errorStyle.Render("Add at least one invoice and one freight cost first")
			return m, nil
		}

		m.invoiceChoices = msg.invoices
		m.freightChoices = msg.freight
		m.run = &runFields{
			invoiceID: msg.invoices[len(msg.invoices)-1].ID,
			freightID: msg.freight[len(msg.freight)-1].ID,
			taxRate:   amountField(m.defaultTaxRate),
		}
		m.form = m.buildSelectForm()
		m.state = worksheetStateSelect
		m.status = ""
		m.table.Blur()

		return m, m.form.Init()

	case generatedMsg:
		m.state = worksheetStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.status = okStyle.Render(msg.status)
		}

		return m, m.loadCmd()
	}

	switch m.state {
	case worksheetStateSelect:
		return m.updateSelect(msg)
	case worksheetStateDuty:
		return m.updateDuty(msg)
	case worksheetStateClear:
		return m.updateClear(msg)
	}

	return m.updateBrowse(msg)
}

func (m WorksheetModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "g":
			return m, m.loadChoicesCmd()
		case "x":
			if idx := m.table.Cursor(); idx >= 0 && idx < len(m.rows) {
				return m, m.deleteCmd(m.rows[idx].ID)
			}

			return m, nil
		case "c":
			if len(m.rows) == 0 {
				return m, nil
			}

			m.run = &runFields{}
			m.form = huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Remove all %d worksheet rows?", len(m.rows))).
					Affirmative("Clear").
					Negative("Keep").
					Value(&m.run.confirm),
			)).WithWidth(50).WithShowHelp(false)
			m.state = worksheetStateClear
			m.table.Blur()

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m WorksheetModel) updateSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, m, cmd := m.stepForm(msg)
	if !done {
		return m, cmd
	}

	inv := m.chosenInvoice()
	if inv == nil {
		return m, func() tea.Msg { return generatedMsg{err: landedcost.ErrInvalidSelection} }
	}

	m.run.duties = dutyFieldsFor(inv)
	if len(m.run.duties) == 0 {
		return m, m.generateCmd(m.params())
	}

	m.form = m.buildDutyForm()
	m.state = worksheetStateDuty

	return m, m.form.Init()
}

func (m WorksheetModel) updateDuty(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, m, cmd := m.stepForm(msg)
	if !done {
		return m, cmd
	}

	return m, m.generateCmd(m.params())
}

func (m WorksheetModel) updateClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, m, cmd := m.stepForm(msg)
	if !done {
		return m, cmd
	}

	if !m.run.confirm {
		m.state = worksheetStateBrowse
		m.table.Focus()

		return m, nil
	}

	return m, m.clearCmd()
}

// stepForm forwards msg to the active form and reports whether it completed.
// Esc abandons the form and returns to the worksheet.
func (m WorksheetModel) stepForm(msg tea.Msg) (bool, WorksheetModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = worksheetStateBrowse
		m.form = nil
		m.table.Focus()

		return false, m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	return m.form.State == huh.StateCompleted, m, cmd
}

func (m WorksheetModel) buildSelectForm() *huh.Form {
	invOpts := make([]huh.Option[uuid.UUID], 0, len(m.invoiceChoices))
	for _, inv := range m.invoiceChoices {
		label := fmt.Sprintf("%s · %s · %s %s", inv.InvoiceNumber, inv.Supplier, FormatAmount(inv.TotalValue()), inv.Currency)
		invOpts = append(invOpts, huh.NewOption(label, inv.ID))
	}

	freightOpts := make([]huh.Option[uuid.UUID], 0, len(m.freightChoices))
	for _, c := range m.freightChoices {
		label := fmt.Sprintf("%s · %s · %s", c.ShipmentType.Label(), route(c.Origin, c.Destination), FormatAmount(c.TotalCost()))
		freightOpts = append(freightOpts, huh.NewOption(label, c.ID))
	}

	r := m.run

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().Title("Invoice").Options(invOpts...).Value(&r.invoiceID),
			huh.NewSelect[uuid.UUID]().Title("Freight Cost").Options(freightOpts...).Value(&r.freightID),
			huh.NewInput().Title("Tax Rate (%)").Value(&r.taxRate).Validate(validateNonNegative),
			huh.NewInput().
				Title("Other Charges").
				Description("Shipment total, spread by item value").
				Value(&r.otherCharges).
				Validate(validateNonNegative),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m WorksheetModel) buildDutyForm() *huh.Form {
	fields := make([]huh.Field, 0, len(m.run.duties))
	for i := range m.run.duties {
		d := &m.run.duties[i]

		title := "Duty Rate (%) for HS " + d.hsCode
		if d.hsCode == "" {
			title = "Duty Rate (%) for items without an HS code"
		}

		fields = append(fields, huh.NewInput().Title(title).Value(&d.rate).Validate(validateNonNegative))
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(60).WithShowHelp(false)
}

// dutyFieldsFor lists each distinct HS code of the invoice once, in item order.
func dutyFieldsFor(inv *invoice.Invoice) []dutyField {
	seen := make(map[string]bool, len(inv.Items))

	var fields []dutyField
	for _, it := range inv.Items {
		if seen[it.HSCode] {
			continue
		}

		seen[it.HSCode] = true
		fields = append(fields, dutyField{hsCode: it.HSCode})
	}

	return fields
}

func (m WorksheetModel) chosenInvoice() *invoice.Invoice {
	for _, inv := range m.invoiceChoices {
		if inv.ID == m.run.invoiceID {
			return inv
		}
	}

	return nil
}

func (m WorksheetModel) params() landedcost.GenerateParams {
	r := m.run

	rates := landedcost.DutyRates{}
	for _, d := range r.duties {
		rate, _ := parseAmount(d.rate)
		rates.Set(d.hsCode, rate)
	}

	tax, _ := parseAmount(r.taxRate)
	other, _ := parseAmount(r.otherCharges)

	return landedcost.GenerateParams{
		InvoiceID: r.invoiceID,
		FreightID: r.freightID,
		Inputs: landedcost.Inputs{
			DutyRates:    rates,
			TaxRate:      tax,
			OtherCharges: other,
		},
	}
}

func (m WorksheetModel) View() string {
	switch m.state {
	case worksheetStateSelect, worksheetStateDuty, worksheetStateClear:
		return page(m.Title(), m.form.View(), m.status, m.ShortHelp())
	}

	if len(m.rows) == 0 {
		return page(m.Title(), "The worksheet is empty. Press g to generate from an invoice.", m.status, m.ShortHelp())
	}

	s := m.summary
	summary := fmt.Sprintf(
		"Rows %d | Goods %s | Freight %s | Duties & Taxes %s | Other %s | Landed %s",
		s.Rows,
		FormatAmount(s.GoodsValue),
		FormatAmount(s.Freight),
		FormatAmount(s.DutiesAndTaxes),
		FormatAmount(s.OtherCharges),
		titleStyle.Render(FormatAmount(s.LandedCost)),
	)

	return page(m.Title(), m.table.View()+"\n\n"+summary, m.status, m.ShortHelp())
}

func (m *WorksheetModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, it := range m.rows {
		rows = append(rows, table.Row{
			it.InvoiceNumber,
			it.ItemDescription,
			it.HSCode,
			strconv.FormatFloat(it.Quantity, 'f', -1, 64),
			FormatAmount(it.TotalPrice),
			FormatAmount(it.FreightCost),
			FormatAmount(it.DutyAmount),
			FormatAmount(it.TaxAmount),
			FormatAmount(it.OtherCharges),
			FormatAmount(it.TotalLandedCost),
			FormatAmount(it.UnitLandedCost),
		})
	}

	m.table.SetRows(rows)
}

type worksheetMsg struct {
	rows []landedcost.Item
	err  error
}

type choicesMsg struct {
	invoices []*invoice.Invoice
	freight  []*freight.Cost
	err      error
}

type generatedMsg struct {
	status string
	err    error
}

func (m WorksheetModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		rows, err := m.service.List(ctx)

		return worksheetMsg{rows: rows, err: err}
	}
}

func (m WorksheetModel) loadChoicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		invoices, err := m.invoices.List(ctx)
		if err != nil {
			return choicesMsg{err: err}
		}

		costs, err := m.freight.List(ctx)

		return choicesMsg{invoices: invoices, freight: costs, err: err}
	}
}

func (m WorksheetModel) generateCmd(p landedcost.GenerateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		items, err := m.service.Generate(ctx, p)
		if err != nil {
			return generatedMsg{err: err}
		}

		return generatedMsg{status: fmt.Sprintf("Added %d rows", len(items))}
	}
}

func (m WorksheetModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.service.Delete(ctx, id); err != nil {
			return generatedMsg{err: err}
		}

		return generatedMsg{status: "Row removed"}
	}
}

func (m WorksheetModel) clearCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.service.Clear(ctx); err != nil {
			return generatedMsg{err: err}
		}

		return generatedMsg{status: "Worksheet cleared"}
	}
}
