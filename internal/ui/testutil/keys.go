package testutil

import tea "github.com/charmbracelet/bubbletea"

// SimulateKeyPress sends a single key to model.
func SimulateKeyPress(model tea.Model, key string) (tea.Model, tea.Cmd) {
	var msg tea.Msg

	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}

	return model.Update(msg)
}

// SimulateKeys sends keys in order and returns the final model and last command.
func SimulateKeys(model tea.Model, keys ...string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		model, cmd = SimulateKeyPress(model, k)
	}
	return model, cmd
}
