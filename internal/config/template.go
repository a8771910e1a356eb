package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/aishield/internal/apperrors"
)

//go:embed templates/questions.yml
var defaultTemplate []byte

// Section is one questionnaire category.
type Section struct {
	Prompts   map[string]string `yaml:"prompts,omitempty"`
	Name      string            `yaml:"-"`
	Questions []string          `yaml:"questions"`
}

// Prompt returns the display text for question.
func (s Section) Prompt(question string) string {
	if p, ok := s.Prompts[question]; ok && p != "" {
		return p
	}
	return question
}

// Template is the ordered questionnaire.
type Template struct {
	Sections []Section
}

// DefaultTemplate returns the built-in questionnaire.
func DefaultTemplate() *Template {
	t, err := ParseTemplate(defaultTemplate)
	if err != nil {
		panic(fmt.Sprintf("embedded template is invalid: %v", err))
	}
	return t
}

// LoadTemplate reads a questionnaire from path, or the built-in one when path is empty.
func LoadTemplate(path string) (*Template, error) {
	if path == "" {
		return DefaultTemplate(), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted source (template file)
	if err != nil {
		return nil, apperrors.WrapConfiguration("read template", err)
	}
	return ParseTemplate(data)
}

// ParseTemplate decodes a questionnaire, keeping sections in document order.
func ParseTemplate(data []byte) (*Template, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.WrapConfiguration("parse template", err)
	}
	if len(doc.Content) == 0 {
		return nil, apperrors.Configuration("parse template", "template is empty")
	}

	sections := mappingValue(doc.Content[0], "sections")
	if sections == nil || sections.Kind != yaml.MappingNode {
		return nil, apperrors.Configuration("parse template", "template has no sections mapping")
	}

	t := &Template{}
	for i := 0; i+1 < len(sections.Content); i += 2 {
		var s Section
		if err := sections.Content[i+1].Decode(&s); err != nil {
			return nil, apperrors.WrapConfiguration("parse template", fmt.Errorf("section %q: %w", sections.Content[i].Value, err))
		}
		s.Name = sections.Content[i].Value
		t.Sections = append(t.Sections, s)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate rejects templates that cannot drive an audit.
func (t *Template) Validate() error {
	if len(t.Sections) == 0 {
		return apperrors.Configuration("validate template", "template has no sections")
	}
	names := make(map[string]bool, len(t.Sections))
	for _, s := range t.Sections {
		if strings.TrimSpace(s.Name) == "" {
			return apperrors.Configuration("validate template", "section name is empty")
		}
		if names[s.Name] {
			return apperrors.Configuration("validate template", fmt.Sprintf("section %q declared twice", s.Name))
		}
		names[s.Name] = true

		if len(s.Questions) == 0 {
			return apperrors.Configuration("validate template", fmt.Sprintf("section %q has no questions", s.Name))
		}
		seen := make(map[string]bool, len(s.Questions))
		for _, q := range s.Questions {
			if strings.TrimSpace(q) == "" {
				return apperrors.Configuration("validate template", fmt.Sprintf("section %q has an empty question", s.Name))
			}
			if seen[q] {
				return apperrors.Configuration("validate template", fmt.Sprintf("section %q repeats question %q", s.Name, q))
			}
			seen[q] = true
		}
	}
	return nil
}

// Section returns the section called name.
func (t *Template) Section(name string) (Section, bool) {
	for _, s := range t.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// SectionNames lists sections in template order.
func (t *Template) SectionNames() []string {
	names := make([]string, len(t.Sections))
	for i, s := range t.Sections {
		names[i] = s.Name
	}
	return names
}

// TotalQuestions counts questions across all sections.
func (t *Template) TotalQuestions() int {
	n := 0
	for _, s := range t.Sections {
		n += len(s.Questions)
	}
	return n
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// MarshalYAML writes the template in the same ordered form ParseTemplate reads.
func (t *Template) MarshalYAML() (any, error) {
	sections := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range t.Sections {
		questions := &yaml.Node{Kind: yaml.SequenceNode}
		for _, q := range s.Questions {
			questions.Content = append(questions.Content, scalar(q))
		}
		section := &yaml.Node{Kind: yaml.MappingNode}
		section.Content = append(section.Content, scalar("questions"), questions)

		if len(s.Prompts) > 0 {
			prompts := &yaml.Node{Kind: yaml.MappingNode}
			for _, q := range s.Questions {
				if p, ok := s.Prompts[q]; ok {
					prompts.Content = append(prompts.Content, scalar(q), scalar(p))
				}
			}
			section.Content = append(section.Content, scalar("prompts"), prompts)
		}
		sections.Content = append(sections.Content, scalar(s.Name), section)
	}
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{scalar("sections"), sections},
	}, nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
