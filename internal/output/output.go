// Package output provides styled terminal output helpers (success, error,
// warning, record formatting) using lipgloss.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sbpo/datapoints/internal/models"
	"github.com/sbpo/datapoints/internal/store"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	pageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(ErrorText(fmt.Sprintf(format, args...)))
}

// ErrorText returns msg styled as an error line
func ErrorText(msg string) string {
	return errorStyle.Render("ERROR: " + msg)
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeConflict     = "conflict"
	ErrCodeInternal     = "internal"
)

// ErrorCode maps an error to its JSON error code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, store.ErrExists):
		return ErrCodeConflict
	case errors.Is(err, models.ErrTitleRequired), errors.Is(err, models.ErrDescriptionRequired):
		return ErrCodeInvalidInput
	default:
		return ErrCodeInternal
	}
}

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	JSONErrorWithDetails(code, message, nil)
}

// JSONErrorWithDetails outputs an error as JSON with additional context
func JSONErrorWithDetails(code, message string, details map[string]interface{}) {
	errObj := map[string]interface{}{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		errObj["details"] = details
	}
	result := map[string]interface{}{
		"error": errObj,
	}
	data, _ := json.Marshal(result)
	fmt.Println(string(data))
}

// FormatRecordShort formats a record on one line, truncated to width
// when width is positive
func FormatRecordShort(r models.Record, width int) string {
	line := strings.Join([]string{
		subtleStyle.Render(ShortID(r.ID)),
		titleStyle.Render(r.Title),
		subtleStyle.Render(OneLine(r.Description)),
	}, "  ")
	if width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	return line
}

// FormatRecordLong formats a record with its full description. The
// description is passed in so callers can render it as markdown first.
func FormatRecordLong(r models.Record, description string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(r.Title))
	sb.WriteString("\n")
	sb.WriteString(subtleStyle.Render("ID: " + r.ID))
	sb.WriteString("\n")
	if description != "" {
		sb.WriteString(SectionHeader("Description"))
		sb.WriteString(description)
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatDeleted formats an undo entry
func FormatDeleted(d models.DeletedRecord) string {
	return fmt.Sprintf("%s %s  %s",
		titleStyle.Render(d.Record.Title),
		errorStyle.Render("deleted"),
		subtleStyle.Render(fmt.Sprintf("(index %d, %s)", d.Index, FormatTimeAgo(d.DeletedAt))))
}

// PageControls renders "‹ 1 2 3 ›" with the current page highlighted.
// It returns "" when everything fits on one page.
func PageControls(page, pages int) string {
	if pages <= 1 {
		return ""
	}
	parts := []string{subtleStyle.Render("‹")}
	for p := 1; p <= pages; p++ {
		label := fmt.Sprintf("%d", p)
		if p == page {
			parts = append(parts, pageStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, label)
		}
	}
	parts = append(parts, subtleStyle.Render("›"))
	return strings.Join(parts, " ")
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Second:
		return "just now"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("2006-01-02")
	}
}

// ShortID shortens a UUID to its first 8 characters
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// OneLine collapses whitespace runs, including newlines, to single spaces
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nDESCRIPTION:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// IndentString indents each line in a string by the specified number of spaces
func IndentString(s string, spaces int) string {
	if s == "" {
		return ""
	}
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
