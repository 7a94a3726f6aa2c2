package action

// criticalBuiltins are builtin ids that configuration can never replace.
var criticalBuiltins = map[string]struct{}{
	"quit": {},
}

// IsCriticalBuiltin reports whether id names a protected builtin.
func IsCriticalBuiltin(id string) bool {
	_, ok := criticalBuiltins[id]
	return ok
}

// Builtins returns a fresh copy of the native action catalog. Every
// registry seeds these before applying custom actions.
func Builtins() []Definition {
	defs := []Definition{
		{
			ID:          "quit",
			Name:        "Quit",
			Description: "Exit the viewer",
			Key:         "q",
			Script:      builtinScript(OpQuit),
			Category:    "General",
		},
		{
			ID:          "showHelp",
			Name:        "Help",
			Description: "Show key binding help",
			Key:         "?",
			Script:      builtinScript(OpShowHelp),
			Category:    "General",
		},
		{
			ID:          "reload",
			Name:        "Reload",
			Description: "Reload the current file",
			Key:         "r",
			Script:      builtinScript(OpReload),
			Category:    "General",
		},
		{
			ID:              "scrollUp",
			Name:            "Scroll Up",
			Description:     "Scroll up one line",
			Key:             "k",
			AlternativeKeys: []string{"up"},
			Script:          builtinScript(OpScrollUp),
			Category:        "Navigation",
		},
		{
			ID:              "scrollDown",
			Name:            "Scroll Down",
			Description:     "Scroll down one line",
			Key:             "j",
			AlternativeKeys: []string{"down"},
			Script:          builtinScript(OpScrollDown),
			Category:        "Navigation",
		},
		{
			ID:              "pageUp",
			Name:            "Page Up",
			Description:     "Scroll up one page",
			Key:             "ctrl+b",
			AlternativeKeys: []string{"pgup"},
			Script:          builtinScript(OpPageUp),
			Category:        "Navigation",
		},
		{
			ID:              "pageDown",
			Name:            "Page Down",
			Description:     "Scroll down one page",
			Key:             "ctrl+f",
			AlternativeKeys: []string{"pgdown"},
			Script:          builtinScript(OpPageDown),
			Category:        "Navigation",
		},
		{
			ID:              "goToStart",
			Name:            "Go to Start",
			Description:     "Jump to the first line",
			Key:             "g",
			AlternativeKeys: []string{"home"},
			Script:          builtinScript(OpGoToStart),
			Category:        "Navigation",
		},
		{
			ID:              "goToEnd",
			Name:            "Go to End",
			Description:     "Jump to the last line",
			Key:             "G",
			AlternativeKeys: []string{"end"},
			Script:          builtinScript(OpGoToEnd),
			Category:        "Navigation",
		},
		{
			ID:          "toggleSelection",
			Name:        "Toggle Selection",
			Description: "Toggle selection of the current line",
			Key:         "space",
			Script:      builtinScript(OpToggleSelection),
			Category:    "Selection",
		},
		{
			ID:          "selectAll",
			Name:        "Select All",
			Description: "Select every line",
			Key:         "ctrl+a",
			Script:      builtinScript(OpSelectAll),
			Category:    "Selection",
		},
		{
			ID:          "clearSelection",
			Name:        "Clear Selection",
			Description: "Clear the selection",
			Key:         "esc",
			Script:      builtinScript(OpClearSelection),
			Category:    "Selection",
		},
		{
			ID:          "toggleLineNumbers",
			Name:        "Line Numbers",
			Description: "Toggle the line number gutter",
			Key:         "n",
			Script:      builtinScript(OpToggleLineNumbers),
			Category:    "View",
		},
	}

	for i := range defs {
		defs[i].Builtin = true
	}
	return defs
}

func builtinScript(op BuiltinOp) Script {
	return Script{Command: &Command{Type: CommandBuiltin, Builtin: op}}
}
