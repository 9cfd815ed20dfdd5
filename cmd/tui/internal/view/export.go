package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/landed/internal/export"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type exportFields struct {
	format export.Format
	dir    string
}

type ExportModel struct {
	CommonModel
	service *export.Service

	state   exportState
	form    *huh.Form
	fields  *exportFields
	spinner spinner.Model
	path    string
	err     error
}

func NewExportModel(svc *export.Service, dir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		service: svc,
		fields:  &exportFields{format: export.FormatCSV, dir: dir},
		spinner: s,
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Export Worksheet" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.fields.format, m.fields.dir))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.path = result.path
		m.err = result.err

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildForm() *huh.Form {
	f := m.fields

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[export.Format]().
				Title("Format").
				Options(
					huh.NewOption("CSV", export.FormatCSV),
					huh.NewOption("Excel (xlsx)", export.FormatXLSX),
				).
				Value(&f.format),
			huh.NewInput().
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&f.dir).
				Validate(required("output path")),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return page(m.Title(), m.form.View(), "", m.ShortHelp())

	case exportStateExporting:
		return pageStyle.Render(fmt.Sprintf("%s Writing worksheet...", m.spinner.View()))

	case exportStateResult:
		if m.err != nil {
			return page(m.Title(), errorStyle.Render(fmt.Sprintf("Error: %v", m.err)), "", m.ShortHelp())
		}

		return page(m.Title(), okStyle.Bold(true).Render("Export Complete!")+"\n\nSaved to "+m.path, "", m.ShortHelp())
	}

	return ""
}

type exportResultMsg struct {
	path string
	err  error
}

const exportTimeout = 30 * time.Second

func (m ExportModel) runExportCmd(format export.Format, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		path, err := m.service.Save(ctx, format, dir)

		return exportResultMsg{path: path, err: err}
	}
}
