// Package wizard is the interactive terminal questionnaire.
package wizard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/aishield/internal/config"
	"github.com/Veraticus/aishield/internal/models"
)

// Item is one question as presented to the user.
type Item struct {
	Section string
	Key     string
	Prompt  string
}

// Model walks the user through every template question in order.
type Model struct {
	answers config.Answers
	items   []Item
	choices []models.Answer
	cursor  int
	choice  int
	width   int
	done    bool
	aborted bool
}

// New builds a wizard over tmpl, pre-selecting any answers already known.
func New(tmpl *config.Template, known config.Answers) Model {
	m := Model{
		answers: make(config.Answers),
		choices: models.AnswerChoices(),
	}
	for _, sec := range tmpl.Sections {
		for _, q := range sec.Questions {
			m.items = append(m.items, Item{Section: sec.Name, Key: q, Prompt: sec.Prompt(q)})
		}
	}
	for section, qs := range known {
		for q, a := range qs {
			m.set(section, q, a)
		}
	}
	m.choice = m.preselect()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, tea.Quit
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.aborted = true
		return m, tea.Quit
	case "up", "k", "left", "h":
		if m.choice > 0 {
			m.choice--
		}
	case "down", "j", "right", "l":
		if m.choice < len(m.choices)-1 {
			m.choice++
		}
	case "y":
		return m.answer(models.AnswerYes)
	case "n":
		return m.answer(models.AnswerNo)
	case "u", "?":
		return m.answer(models.AnswerUnknown)
	case "enter", " ":
		return m.answer(m.choices[m.choice])
	case "backspace", "b":
		if m.cursor > 0 {
			m.cursor--
			m.choice = m.preselect()
		}
	}
	return m, nil
}

func (m Model) answer(a models.Answer) (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		m.done = true
		return m, tea.Quit
	}
	item := m.items[m.cursor]
	m.set(item.Section, item.Key, a)

	if m.cursor == len(m.items)-1 {
		m.done = true
		return m, tea.Quit
	}
	m.cursor++
	m.choice = m.preselect()
	return m, nil
}

func (m *Model) set(section, question string, a models.Answer) {
	qs, ok := m.answers[section]
	if !ok {
		qs = make(map[string]models.Answer)
		m.answers[section] = qs
	}
	qs[question] = a
}

// preselect highlights the current answer, or Unknown for a fresh question.
func (m Model) preselect() int {
	want := models.AnswerUnknown
	if len(m.items) > 0 {
		item := m.items[m.cursor]
		if a, ok := m.answers[item.Section][item.Key]; ok {
			want = a.Normalize()
		}
	}
	for i, c := range m.choices {
		if c == want {
			return i
		}
	}
	return 0
}

// Answers returns everything answered so far.
func (m Model) Answers() config.Answers {
	out := make(config.Answers, len(m.answers))
	for section, qs := range m.answers {
		out[section] = models.CloneAnswers(qs)
	}
	return out
}

// Done reports whether every question was answered.
func (m Model) Done() bool {
	return m.done
}

// Aborted reports whether the user quit early.
func (m Model) Aborted() bool {
	return m.aborted
}

// Run drives the wizard on the terminal and returns the collected answers.
func Run(tmpl *config.Template, known config.Answers, opts ...tea.ProgramOption) (config.Answers, bool, error) {
	final, err := tea.NewProgram(New(tmpl, known), opts...).Run()
	if err != nil {
		return nil, false, err
	}
	m, ok := final.(Model)
	if !ok {
		return nil, false, nil
	}
	return m.Answers(), m.Done(), nil
}
