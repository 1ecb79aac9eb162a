package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sbpo/datapoints/internal/models"
	"github.com/sbpo/datapoints/internal/output"
)

const defaultWidth = 80

// busyLabels describes each in-flight operation, in display priority
var busyLabels = []struct {
	Op    models.Op
	Label string
}{
	{models.OpRemove, "Removing…"},
	{models.OpRestore, "Restoring…"},
	{models.OpCreate, "Saving…"},
	{models.OpUpdate, "Saving…"},
	{models.OpGet, "Loading record…"},
	{models.OpList, "Loading data"},
}

// View renders the current model state
func (m Model) View() string {
	return m.renderView()
}

func (m Model) renderView() string {
	if m.HelpOpen {
		return m.renderOverlay(m.renderHelp())
	}
	if m.formActive() {
		return m.renderOverlay(m.renderForm())
	}

	sections := []string{m.renderHeader(), m.renderList()}
	if controls := output.PageControls(m.Page, m.Pages()); controls != "" {
		sections = append(sections, controls)
	}
	if notes := m.renderNotifications(); notes != "" {
		sections = append(sections, notes)
	}
	if status := m.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	footer := m.Keymap.FooterHelp()
	if pending := m.Keymap.PendingKey(); pending != "" {
		footer = pending + "…  " + footer
	}
	sections = append(sections, helpStyle.Render(footer))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) width() int {
	if m.Width <= 0 {
		return defaultWidth
	}
	return m.Width
}

// BusyLabel returns the label of the most relevant in-flight operation
func (m Model) BusyLabel() string {
	for _, b := range busyLabels {
		if m.Loading(b.Op) {
			return b.Label
		}
	}
	return ""
}

func (m Model) renderHeader() string {
	header := titleStyle.Render("Data points")
	if n := len(m.Records); m.Loaded {
		header += subtleStyle.Render(fmt.Sprintf("  %d items", n))
	}
	if m.Busy() {
		header += "  " + m.Spinner.View() + busyStyle.Render(m.BusyLabel())
	}
	return header
}

func (m Model) renderList() string {
	inner := m.width() - 4
	var rows []string

	switch {
	case !m.Loaded && m.Loading(models.OpList):
		rows = append(rows, subtleStyle.Render("Loading data"))
	case !m.Loaded && m.Err != nil:
		rows = append(rows, statusErrorStyle.Render("Error loading data"))
	case len(m.Records) == 0:
		rows = append(rows, subtleStyle.Render("No data points. Press n to add one."))
	default:
		for i, r := range m.PageRecords() {
			rows = append(rows, m.renderRow(r, i == m.Cursor, inner))
		}
	}

	title := panelTitleStyle.Render(fmt.Sprintf("Page %d/%d", m.Page, max(m.Pages(), 1)))
	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return activePanelStyle.Width(inner + 2).Render(title + "\n" + body)
}

func (m Model) renderRow(r models.Record, selected bool, width int) string {
	title := ansi.Truncate(r.Title, width-2, "…")
	desc := ansi.Truncate(output.OneLine(r.Description), width-2, "…")
	if selected {
		return selectedRowStyle.Render("> "+title) + "\n" + "  " + subtleStyle.Render(desc)
	}
	return "  " + titleStyle.Render(title) + "\n" + "  " + subtleStyle.Render(desc)
}

// renderNotifications lists restorable records, newest first
func (m Model) renderNotifications() string {
	entries := m.Undo.Entries()
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		hint := "[u]ndo"
		if i > 0 {
			hint = fmt.Sprintf("[%d] undo", i+1)
		}
		line := fmt.Sprintf("%s deleted  %s", e.Record.Title, undoKeyStyle.Render(hint))
		lines = append(lines, ansi.Truncate(line, m.width()-2, "…"))
	}
	return notificationStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	if m.StatusMessage == "" {
		return ""
	}
	if m.StatusIsError {
		return statusErrorStyle.Render(m.StatusMessage)
	}
	return statusOKStyle.Render(m.StatusMessage)
}

func (m Model) renderForm() string {
	fs := m.FormState
	var sb strings.Builder
	sb.WriteString(panelTitleStyle.Render(strings.ToUpper(fs.Mode().String())))
	if m.Loading(m.formOp()) {
		sb.WriteString("  " + m.Spinner.View() + busyStyle.Render("Saving…"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(fs.Form.View())
	sb.WriteString("\n")
	if status := m.renderStatus(); status != "" {
		sb.WriteString(status + "\n")
	}
	sb.WriteString(helpStyle.Render(fs.Mode().SubmitLabel() + ": " + m.Keymap.FormFooterHelp()))
	return panelStyle.Render(sb.String())
}

func (m Model) renderHelp() string {
	return panelStyle.Render(strings.TrimSpace(m.Keymap.GenerateHelp()) + "\n\n" + helpStyle.Render("esc/?: close"))
}

// renderOverlay centers content when the terminal size is known
func (m Model) renderOverlay(content string) string {
	if m.Width <= 0 || m.Height <= 0 {
		return content
	}
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
}
