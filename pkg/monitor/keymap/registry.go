package keymap

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const sequenceTimeout = 500 * time.Millisecond

// Context represents a UI context for keybindings
type Context string

const (
	ContextGlobal Context = "global"
	ContextMain   Context = "main" // Record list, no overlay open
	ContextForm   Context = "form" // Create/edit form is open
	ContextHelp   Context = "help" // Help overlay is open
)

// Contexts lists every context in display order
func Contexts() []Context {
	return []Context{ContextMain, ContextForm, ContextHelp, ContextGlobal}
}

// Command represents a named command that can be triggered by key bindings
type Command string

// All available commands
const (
	// Global commands
	CmdQuit       Command = "quit"
	CmdToggleHelp Command = "toggle-help"

	// List navigation
	CmdCursorDown Command = "cursor-down"
	CmdCursorUp   Command = "cursor-up"
	CmdNextPage   Command = "next-page"
	CmdPrevPage   Command = "prev-page"
	CmdFirstPage  Command = "first-page"
	CmdLastPage   Command = "last-page"
	CmdRefresh    Command = "refresh"

	// Record actions
	CmdNewRecord  Command = "new-record"
	CmdEditRecord Command = "edit-record"
	CmdRemove     Command = "remove"
	CmdUndo       Command = "undo" // Restore the newest deleted record

	// Form commands
	CmdFormSubmit           Command = "form-submit"
	CmdFormCancel           Command = "form-cancel"
	CmdFormClearTitle       Command = "form-clear-title"
	CmdFormClearDescription Command = "form-clear-description"
	CmdFormReset            Command = "form-reset"
)

// undoPrefix prefixes the numbered undo commands ("undo-1" .. "undo-9")
const undoPrefix = "undo-"

// MaxUndoSlots is the number of numbered undo commands
const MaxUndoSlots = 9

// UndoCommand returns the command that restores the nth notification (1-based)
func UndoCommand(n int) Command {
	return Command(fmt.Sprintf("%s%d", undoPrefix, n))
}

// UndoSlot returns the 1-based notification index of a numbered undo command
func UndoSlot(cmd Command) (int, bool) {
	s, ok := strings.CutPrefix(string(cmd), undoPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxUndoSlots {
		return 0, false
	}
	return n, true
}

// Binding maps a key or key sequence to a command in a specific context
type Binding struct {
	Key         string  // e.g., "x", "ctrl+s", "g g"
	Command     Command // Command ID
	Context     Context // "global", "main", "form", "help"
	Description string  // Human-readable description for help text
}

// Registry manages key bindings and command dispatch
type Registry struct {
	bindings      map[Context][]Binding // context -> bindings
	userOverrides map[string]Command    // "context:key" -> command
	pendingKey    string
	pendingTime   time.Time
	mu            sync.RWMutex
}

// NewRegistry creates a new keymap registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context][]Binding),
		userOverrides: make(map[string]Command),
	}
}

// RegisterBinding adds a key binding
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// RegisterBindings adds multiple key bindings
func (r *Registry) RegisterBindings(bindings []Binding) {
	for _, b := range bindings {
		r.RegisterBinding(b)
	}
}

// SetUserOverride sets a user-configured key override for a specific context
func (r *Registry) SetUserOverride(context Context, key string, cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[string(context)+":"+key] = cmd
}

// Lookup finds the command for a given key in the specified context
// Returns the command and whether a binding was found
// Checks: user overrides -> context bindings -> global bindings
func (r *Registry) Lookup(key tea.KeyMsg, activeContext Context) (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyStr := KeyToString(key)

	// Check for pending key sequence
	if r.pendingKey != "" {
		if time.Since(r.pendingTime) < sequenceTimeout {
			seq := r.pendingKey + " " + keyStr
			r.pendingKey = ""
			if cmd, found := r.findCommand(seq, activeContext); found {
				return cmd, true
			}
			// Sequence didn't match, try just the new key
		} else {
			r.pendingKey = ""
		}
	}

	// Check if this key starts a sequence
	if r.isSequenceStart(keyStr, activeContext) {
		r.pendingKey = keyStr
		r.pendingTime = time.Now()
		return "", false
	}

	return r.findCommand(keyStr, activeContext)
}

// LookupExact finds a command bound in exactly this context, ignoring
// global bindings and sequences. Text inputs use it so that typed
// characters never trigger global commands.
func (r *Registry) LookupExact(key tea.KeyMsg, context Context) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keyStr := KeyToString(key)
	if cmd, ok := r.userOverrides[string(context)+":"+keyStr]; ok {
		return cmd, true
	}
	return r.findInContext(keyStr, context)
}

// findCommand looks up a command for the given key in order of precedence
func (r *Registry) findCommand(key string, activeContext Context) (Command, bool) {
	// 1. Check user overrides for active context
	if activeContext != "" && activeContext != ContextGlobal {
		if cmd, ok := r.userOverrides[string(activeContext)+":"+key]; ok {
			return cmd, true
		}
	}
	// Check global user overrides
	if cmd, ok := r.userOverrides[string(ContextGlobal)+":"+key]; ok {
		return cmd, true
	}

	// 2. Check active context bindings
	if activeContext != "" && activeContext != ContextGlobal {
		if cmd, found := r.findInContext(key, activeContext); found {
			return cmd, true
		}
	}

	// 3. Fall back to global bindings
	return r.findInContext(key, ContextGlobal)
}

// findInContext finds a command for a key in a specific context
func (r *Registry) findInContext(key string, context Context) (Command, bool) {
	for _, b := range r.bindings[context] {
		if b.Key == key {
			return b.Command, true
		}
	}
	return "", false
}

// isSequenceStart checks if this key could start a multi-key sequence
func (r *Registry) isSequenceStart(key string, activeContext Context) bool {
	prefix := key + " "

	contexts := []Context{ContextGlobal}
	if activeContext != "" && activeContext != ContextGlobal {
		contexts = append(contexts, activeContext)
	}

	for _, ctx := range contexts {
		for _, b := range r.bindings[ctx] {
			if strings.HasPrefix(b.Key, prefix) {
				return true
			}
		}
		for k := range r.userOverrides {
			if strings.HasPrefix(k, string(ctx)+":"+prefix) {
				return true
			}
		}
	}

	return false
}

// ResetPending clears any pending key sequence
func (r *Registry) ResetPending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingKey = ""
}

// PendingKey returns the current pending key (for UI display)
func (r *Registry) PendingKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pendingKey != "" && time.Since(r.pendingTime) < sequenceTimeout {
		return r.pendingKey
	}
	return ""
}

// KeyToString converts a tea.KeyMsg to a string representation
func KeyToString(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeyCtrlC:
		return "ctrl+c"
	case tea.KeyCtrlD:
		return "ctrl+d"
	case tea.KeyCtrlR:
		return "ctrl+r"
	case tea.KeyCtrlS:
		return "ctrl+s"
	case tea.KeyCtrlT:
		return "ctrl+t"
	case tea.KeyCtrlU:
		return "ctrl+u"
	case tea.KeyTab:
		return "tab"
	case tea.KeyShiftTab:
		return "shift+tab"
	case tea.KeyEnter:
		return "enter"
	case tea.KeyEsc:
		return "esc"
	case tea.KeySpace:
		return "space"
	case tea.KeyBackspace:
		return "backspace"
	case tea.KeyDelete:
		return "delete"
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	case tea.KeyLeft:
		return "left"
	case tea.KeyRight:
		return "right"
	case tea.KeyHome:
		return "home"
	case tea.KeyEnd:
		return "end"
	case tea.KeyPgUp:
		return "pgup"
	case tea.KeyPgDown:
		return "pgdown"
	case tea.KeyRunes:
		return string(key.Runes)
	default:
		return key.String()
	}
}
