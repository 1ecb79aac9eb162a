package keymap

import (
	"fmt"
	"sort"
	"strings"
)

// helpSections orders the help overlay
var helpSections = []struct {
	Title   string
	Context Context
}{
	{"LIST", ContextMain},
	{"FORM", ContextForm},
	{"GLOBAL", ContextGlobal},
}

// GenerateHelp generates help text from the registry bindings. Keys bound
// to the same command are listed together; user overrides are included.
func (r *Registry) GenerateHelp() string {
	var sb strings.Builder
	sb.WriteString("\nDATA POINTS - Key Bindings\n")

	for _, section := range helpSections {
		byCmd := r.bindingsByCommand(section.Context)
		if len(byCmd) == 0 {
			continue
		}
		sb.WriteString("\n" + section.Title + ":\n")
		for _, cmd := range sortedCommands(byCmd) {
			keys := strings.Join(byCmd[cmd], " / ")
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", keys, CommandHelp(cmd)))
		}
	}
	return sb.String()
}

// FooterHelp generates a compact help string for the footer
func (r *Registry) FooterHelp() string {
	return "n:new e:edit x:remove u:undo h/l:page r:refresh ?:help q:quit"
}

// FormFooterHelp generates help text for the form footer
func (r *Registry) FormFooterHelp() string {
	return "ctrl+s:submit  esc:cancel  ctrl+t:clear title  ctrl+d:clear description  ctrl+r:reset"
}

// CommandHelp returns help info for a specific command
func CommandHelp(cmd Command) string {
	if n, ok := UndoSlot(cmd); ok {
		return fmt.Sprintf("Restore notification #%d", n)
	}
	switch cmd {
	case CmdQuit:
		return "Exit the monitor"
	case CmdToggleHelp:
		return "Show/hide keyboard shortcuts"
	case CmdRefresh:
		return "Reload the list"
	case CmdCursorDown:
		return "Move cursor down one row"
	case CmdCursorUp:
		return "Move cursor up one row"
	case CmdNextPage:
		return "Go to the next page"
	case CmdPrevPage:
		return "Go to the previous page"
	case CmdFirstPage:
		return "Jump to the first page"
	case CmdLastPage:
		return "Jump to the last page"
	case CmdNewRecord:
		return "Open the form for a new record"
	case CmdEditRecord:
		return "Edit the selected record"
	case CmdRemove:
		return "Remove the selected record"
	case CmdUndo:
		return "Restore the most recently removed record"
	case CmdFormSubmit:
		return "Submit the form"
	case CmdFormCancel:
		return "Close the form without saving"
	case CmdFormClearTitle:
		return "Clear the title field"
	case CmdFormClearDescription:
		return "Clear the description field"
	case CmdFormReset:
		return "Clear both fields"
	default:
		return string(cmd)
	}
}

// bindingsByCommand groups a context's keys by command, user overrides first
func (r *Registry) bindingsByCommand(context Context) map[Command][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[Command][]string)
	prefix := string(context) + ":"
	for k, cmd := range r.userOverrides {
		if key, ok := strings.CutPrefix(k, prefix); ok {
			result[cmd] = append(result[cmd], formatKey(key))
		}
	}
	for _, b := range r.bindings[context] {
		result[b.Command] = append(result[b.Command], formatKey(b.Key))
	}
	return result
}

// sortedCommands returns the map's commands in declaration order
func sortedCommands(m map[Command][]string) []Command {
	order := make(map[Command]int)
	for i, c := range AllCommands() {
		order[c] = i
	}
	cmds := make([]Command, 0, len(m))
	for c := range m {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return order[cmds[i]] < order[cmds[j]]
	})
	return cmds
}

// formatKey formats a key string for display
func formatKey(key string) string {
	replacements := []struct{ old, new string }{
		{"shift+tab", "Shift+Tab"},
		{"ctrl+", "Ctrl+"},
		{"pgup", "PgUp"},
		{"pgdown", "PgDn"},
		{"up", "↑"},
		{"down", "↓"},
		{"left", "←"},
		{"right", "→"},
		{"enter", "Enter"},
		{"esc", "Esc"},
		{"tab", "Tab"},
		{"space", "Space"},
		{"backspace", "Backspace"},
		{"delete", "Del"},
		{"home", "Home"},
		{"end", "End"},
	}

	// Special keys are whole words; single characters pass through
	if len([]rune(key)) == 1 {
		return key
	}
	result := key
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r.old, r.new)
	}
	return result
}

// AllCommands returns all defined commands in declaration order
func AllCommands() []Command {
	cmds := []Command{
		CmdCursorDown, CmdCursorUp,
		CmdNextPage, CmdPrevPage, CmdFirstPage, CmdLastPage, CmdRefresh,
		CmdNewRecord, CmdEditRecord, CmdRemove, CmdUndo,
	}
	for n := 1; n <= MaxUndoSlots; n++ {
		cmds = append(cmds, UndoCommand(n))
	}
	return append(cmds,
		CmdFormSubmit, CmdFormCancel, CmdFormClearTitle, CmdFormClearDescription, CmdFormReset,
		CmdToggleHelp, CmdQuit,
	)
}
