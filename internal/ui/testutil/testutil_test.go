package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no ANSI codes", input: "Hello World", expected: "Hello World"},
		{name: "simple color code", input: "\x1b[31mRed Text\x1b[0m", expected: "Red Text"},
		{name: "multiple codes", input: "\x1b[1m\x1b[32mBold Green\x1b[0m Normal", expected: "Bold Green Normal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripANSI(tt.input))
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", NormalizeWhitespace("  a    b  \n\n   c   \n"))
}

func TestAssertContainsInOrder(t *testing.T) {
	AssertContainsInOrder(t, "first second third", []string{"first", "second", "third"})

	inner := &testing.T{}
	AssertContainsInOrder(inner, "first second third", []string{"third", "first"})
	assert.True(t, inner.Failed())
}

type keyRecorder struct {
	keys []string
}

func (k keyRecorder) Init() tea.Cmd { return nil }

func (k keyRecorder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		k.keys = append(k.keys, km.String())
	}
	return k, nil
}

func (k keyRecorder) View() string { return "" }

func TestSimulateKeys(t *testing.T) {
	model, _ := SimulateKeys(keyRecorder{}, "enter", "y", "backspace", "ctrl+c")
	assert.Equal(t, []string{"enter", "y", "backspace", "ctrl+c"}, model.(keyRecorder).keys)
}
