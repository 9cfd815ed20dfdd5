package view

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/classify"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
)

type invoiceState int

const (
	invoiceStateBrowse invoiceState = iota
	invoiceStateHeader
	invoiceStateItems
	invoiceStateItemForm
)

type invoiceFields struct {
	number       string
	supplier     string
	currency     invoice.Currency
	exchangeRate string
	date         string
}

type itemFields struct {
	description string
	quantity    string
	unitPrice   string
	hsCode      string
	weight      string
}

type InvoicesModel struct {
	CommonModel
	service    *invoice.Service
	classifier *classify.Service

	defaultCurrency invoice.Currency

	state    invoiceState
	table    table.Model
	items    table.Model
	invoices []*invoice.Invoice

	// editing is uuid.Nil while a new invoice is drafted.
	editing uuid.UUID
	draft   invoice.Draft
	form    *huh.Form
	header  *invoiceFields
	item    *itemFields
	status  string
}

func NewInvoicesModel(svc *invoice.Service, classifier *classify.Service, defaultCurrency string) InvoicesModel {
	return InvoicesModel{
		service:         svc,
		classifier:      classifier,
		defaultCurrency: invoice.Currency(strings.ToUpper(strings.TrimSpace(defaultCurrency))),
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Number", Width: 14},
			{Title: "Supplier", Width: 24},
			{Title: "Items", Width: 6},
			{Title: "Total", Width: 12},
			{Title: "Currency", Width: 8},
		}, 12),
		items: newTable([]table.Column{
			{Title: "Description", Width: 28},
			{Title: "Qty", Width: 8},
			{Title: "Unit Price", Width: 12},
			{Title: "Total", Width: 12},
			{Title: "HS Code", Width: 10},
			{Title: "Weight", Width: 8},
		}, 10),
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	switch m.state {
	case invoiceStateHeader, invoiceStateItemForm:
		return "Enter: next | Esc: cancel"
	case invoiceStateItems:
		return "a: add item | x: remove item | s: save | Esc: discard"
	}

	return "Esc: back | n: new | e: edit | d: delete"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoiceListMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.invoices = msg.invoices
		m.refreshTable()

		return m, nil

	case invoiceSavedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.state = invoiceStateBrowse
		m.status = okStyle.Render(msg.status)
		m.table.Focus()

		return m, m.loadCmd()

	case itemReadyMsg:
		if !m.draft.AddLineItem(msg.params) {
			m.status = errorStyle.Render("Item skipped: needs a description and a positive quantity and unit price")
		} else {
			m.status = ""
		}

		m.state = invoiceStateItems
		m.refreshItems()

		return m, nil
	}

	switch m.state {
	case invoiceStateHeader:
		return m.updateHeader(msg)
	case invoiceStateItems:
		return m.updateItems(msg)
	case invoiceStateItemForm:
		return m.updateItemForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			m.editing = uuid.Nil
			return m.startHeader(m.newDraft())
		case "e":
			if inv := m.selected(); inv != nil {
				m.editing = inv.ID
				return m.startHeader(invoice.DraftFrom(inv))
			}

			return m, nil
		case "d":
			if inv := m.selected(); inv != nil {
				return m, m.deleteCmd(inv)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) startHeader(d invoice.Draft) (tea.Model, tea.Cmd) {
	m.draft = d
	m.header = &invoiceFields{
		number:       d.InvoiceNumber,
		supplier:     d.Supplier,
		currency:     d.Currency,
		exchangeRate: amountField(d.ExchangeRate),
		date:         FormatDate(d.Date),
	}
	m.form = m.buildHeaderForm()
	m.state = invoiceStateHeader
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

// newDraft starts a blank invoice in the configured currency.
func (m InvoicesModel) newDraft() invoice.Draft {
	d := invoice.NewDraft()
	if m.defaultCurrency != "" {
		d.Currency = m.defaultCurrency
	}

	return d
}

func (m InvoicesModel) updateHeader(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = invoiceStateBrowse
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

	h := m.header
	m.draft.InvoiceNumber = strings.TrimSpace(h.number)
	m.draft.Supplier = strings.TrimSpace(h.supplier)
	m.draft.Currency = h.currency
	m.draft.ExchangeRate, _ = parseAmount(h.exchangeRate)

	if d, err := time.Parse(time.DateOnly, strings.TrimSpace(h.date)); err == nil {
		m.draft.Date = d
	}

	m.state = invoiceStateItems
	m.refreshItems()
	m.items.Focus()

	return m, nil
}

func (m InvoicesModel) updateItems(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = invoiceStateBrowse
			m.status = ""
			m.table.Focus()

			return m, nil
		case "a":
			m.item = &itemFields{}
			m.form = m.buildItemForm()
			m.state = invoiceStateItemForm
			m.status = ""

			return m, m.form.Init()
		case "x":
			m.draft.RemoveLineItem(m.items.Cursor())
			m.refreshItems()

			return m, nil
		case "s":
			return m, m.saveCmd(m.editing, m.draft)
		}
	}

	var cmd tea.Cmd
	m.items, cmd = m.items.Update(msg)

	return m, cmd
}

func (m InvoicesModel) updateItemForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = invoiceStateItems
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.resolveItemCmd(*m.item)
}

func (m InvoicesModel) buildHeaderForm() *huh.Form {
	h := m.header
	options := currencyOptions(h.currency)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Invoice Number").Value(&h.number).Validate(required("invoice number")),
			huh.NewInput().Title("Supplier").Value(&h.supplier).Validate(required("supplier")),
			huh.NewSelect[invoice.Currency]().Title("Currency").Options(options...).Value(&h.currency),
			huh.NewInput().Title("Exchange Rate").Value(&h.exchangeRate).Validate(validatePositive),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&h.date).Validate(validateDate),
		),
	).WithWidth(50).WithShowHelp(false)
}

// currencyOptions lists the known currencies, with current first when it is
// free text so the select can still show it.
func currencyOptions(current invoice.Currency) []huh.Option[invoice.Currency] {
	options := make([]huh.Option[invoice.Currency], 0, len(invoice.Currencies)+1)
	if current != "" && !slices.Contains(invoice.Currencies, current) {
		options = append(options, huh.NewOption(string(current), current))
	}

	for _, c := range invoice.Currencies {
		options = append(options, huh.NewOption(string(c), c))
	}

	return options
}

func (m InvoicesModel) buildItemForm() *huh.Form {
	it := m.item

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Description").Value(&it.description),
			huh.NewInput().Title("Quantity").Value(&it.quantity).Validate(validatePositive),
			huh.NewInput().Title("Unit Price").Value(&it.unitPrice).Validate(validatePositive),
			huh.NewInput().
				Title("HS Code").
				Description("Leave blank to use a learned suggestion").
				Value(&it.hsCode),
			huh.NewInput().Title("Weight (kg)").Value(&it.weight).Validate(validateNonNegative),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m InvoicesModel) View() string {
	switch m.state {
	case invoiceStateHeader, invoiceStateItemForm:
		return page(m.Title(), m.form.View(), m.status, m.ShortHelp())

	case invoiceStateItems:
		header := fmt.Sprintf("%s · %s · %s · rate %s · %s",
			m.draft.InvoiceNumber, m.draft.Supplier, m.draft.Currency,
			strconv.FormatFloat(m.draft.ExchangeRate, 'f', -1, 64), FormatDate(m.draft.Date))
		body := fmt.Sprintf("%s\n\n%s\n\nTotal value: %s", header, m.items.View(), FormatAmount(m.draft.TotalValue()))

		return page(m.Title(), body, m.status, m.ShortHelp())
	}

	if len(m.invoices) == 0 {
		return page(m.Title(), "No invoices yet.", m.status, m.ShortHelp())
	}

	return page(m.Title(), m.table.View(), m.status, m.ShortHelp())
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		rows = append(rows, table.Row{
			FormatDate(inv.Date),
			inv.InvoiceNumber,
			inv.Supplier,
			strconv.Itoa(len(inv.Items)),
			FormatAmount(inv.TotalValue()),
			string(inv.Currency),
		})
	}

	m.table.SetRows(rows)
}

func (m *InvoicesModel) refreshItems() {
	rows := make([]table.Row, 0, len(m.draft.Items))
	for _, it := range m.draft.Items {
		rows = append(rows, table.Row{
			it.Description,
			strconv.FormatFloat(it.Quantity, 'f', -1, 64),
			FormatAmount(it.UnitPrice),
			FormatAmount(it.TotalPrice()),
			it.HSCode,
			strconv.FormatFloat(it.Weight, 'f', -1, 64),
		})
	}

	m.items.SetRows(rows)
}

func (m InvoicesModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invoices) {
		return nil
	}

	return m.invoices[idx]
}

type invoiceListMsg struct {
	invoices []*invoice.Invoice
	err      error
}

type invoiceSavedMsg struct {
	status string
	err    error
}

type itemReadyMsg struct {
	params invoice.LineItemParams
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		invoices, err := m.service.List(ctx)

		return invoiceListMsg{invoices: invoices, err: err}
	}
}

// resolveItemCmd fills a blank HS code from the learned mappings and learns
// the code when one was typed in.
func (m InvoicesModel) resolveItemCmd(f itemFields) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		p := invoice.LineItemParams{
			Description: strings.TrimSpace(f.description),
			HSCode:      strings.TrimSpace(f.hsCode),
		}
		p.Quantity, _ = parseAmount(f.quantity)
		p.UnitPrice, _ = parseAmount(f.unitPrice)
		p.Weight, _ = parseAmount(f.weight)

		if p.Description == "" {
			return itemReadyMsg{params: p}
		}

		if p.HSCode == "" {
			if code, err := m.classifier.Suggest(ctx, p.Description); err == nil {
				p.HSCode = code
			}
		} else {
			_ = m.classifier.Learn(ctx, p.Description, p.HSCode)
		}

		return itemReadyMsg{params: p}
	}
}

func (m InvoicesModel) saveCmd(id uuid.UUID, d invoice.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		var (
			inv *invoice.Invoice
			err error
		)

		if id == uuid.Nil {
			inv, err = m.service.Add(ctx, d)
		} else {
			inv, err = m.service.Update(ctx, id, d)
		}

		if err != nil {
			return invoiceSavedMsg{err: err}
		}

		return invoiceSavedMsg{status: fmt.Sprintf("Saved %s (%s %s)", inv.InvoiceNumber, FormatAmount(inv.TotalValue()), inv.Currency)}
	}
}

func (m InvoicesModel) deleteCmd(inv *invoice.Invoice) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.service.Delete(ctx, inv.ID); err != nil {
			return invoiceSavedMsg{err: err}
		}

		return invoiceSavedMsg{status: "Deleted " + inv.InvoiceNumber}
	}
}
