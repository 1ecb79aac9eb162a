package keymap

// DefaultBindings returns the default key bindings for the monitor.
// Navigation follows vim conventions; arrows and brackets work too.
func DefaultBindings() []Binding {
	bindings := []Binding{
		// Global
		{Key: "q", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "?", Command: CmdToggleHelp, Context: ContextGlobal, Description: "Toggle help"},

		// Cursor movement within the page
		{Key: "j", Command: CmdCursorDown, Context: ContextMain, Description: "Move down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextMain, Description: "Move down"},
		{Key: "k", Command: CmdCursorUp, Context: ContextMain, Description: "Move up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextMain, Description: "Move up"},

		// Paging
		{Key: "l", Command: CmdNextPage, Context: ContextMain, Description: "Next page"},
		{Key: "right", Command: CmdNextPage, Context: ContextMain, Description: "Next page"},
		{Key: "]", Command: CmdNextPage, Context: ContextMain, Description: "Next page"},
		{Key: "pgdown", Command: CmdNextPage, Context: ContextMain, Description: "Next page"},
		{Key: "h", Command: CmdPrevPage, Context: ContextMain, Description: "Previous page"},
		{Key: "left", Command: CmdPrevPage, Context: ContextMain, Description: "Previous page"},
		{Key: "[", Command: CmdPrevPage, Context: ContextMain, Description: "Previous page"},
		{Key: "pgup", Command: CmdPrevPage, Context: ContextMain, Description: "Previous page"},
		{Key: "g g", Command: CmdFirstPage, Context: ContextMain, Description: "First page"},
		{Key: "home", Command: CmdFirstPage, Context: ContextMain, Description: "First page"},
		{Key: "G", Command: CmdLastPage, Context: ContextMain, Description: "Last page"},
		{Key: "end", Command: CmdLastPage, Context: ContextMain, Description: "Last page"},
		{Key: "r", Command: CmdRefresh, Context: ContextMain, Description: "Refresh list"},

		// Record actions
		{Key: "n", Command: CmdNewRecord, Context: ContextMain, Description: "New record"},
		{Key: "e", Command: CmdEditRecord, Context: ContextMain, Description: "Edit record"},
		{Key: "enter", Command: CmdEditRecord, Context: ContextMain, Description: "Edit record"},
		{Key: "x", Command: CmdRemove, Context: ContextMain, Description: "Remove record"},
		{Key: "delete", Command: CmdRemove, Context: ContextMain, Description: "Remove record"},
		{Key: "u", Command: CmdUndo, Context: ContextMain, Description: "Undo last removal"},

		// Form
		{Key: "ctrl+s", Command: CmdFormSubmit, Context: ContextForm, Description: "Submit"},
		{Key: "esc", Command: CmdFormCancel, Context: ContextForm, Description: "Cancel"},
		{Key: "ctrl+t", Command: CmdFormClearTitle, Context: ContextForm, Description: "Clear title"},
		{Key: "ctrl+d", Command: CmdFormClearDescription, Context: ContextForm, Description: "Clear description"},
		{Key: "ctrl+r", Command: CmdFormReset, Context: ContextForm, Description: "Reset form"},

		// Help overlay
		{Key: "esc", Command: CmdToggleHelp, Context: ContextHelp, Description: "Close help"},
	}

	for n := 1; n <= MaxUndoSlots; n++ {
		bindings = append(bindings, Binding{
			Key:         string(rune('0' + n)),
			Command:     UndoCommand(n),
			Context:     ContextMain,
			Description: "Undo notification #" + string(rune('0'+n)),
		})
	}
	return bindings
}

// RegisterDefaults registers all default bindings with the registry
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
}
