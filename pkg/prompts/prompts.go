// Package prompts holds the prompt catalog used to build model requests and
// the parser that reads structured fields back out of model text.
package prompts

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultCatalog []byte

// ErrInvalidPromptType is returned when no template matches a request
var ErrInvalidPromptType = errors.New("Invalid prompt type")

// Source identifies which rule picked a template
type Source string

const (
	SourceCustom        Source = "custom"
	SourceUserDescribed Source = "user_described"
	SourceFixed         Source = "fixed"
)

// Catalog is the set of prompt templates loaded from YAML
type Catalog struct {
	Version string `yaml:"version"`
	Article struct {
		System string `yaml:"system"`
	} `yaml:"article"`
	Description struct {
		UserDescribed string            `yaml:"user_described"`
		Fixed         map[string]string `yaml:"fixed"`
	} `yaml:"description"`

	userDescribed *template.Template
}

// Selection is the outcome of template selection
type Selection struct {
	Source Source
	Prompt string
}

// userDescribedData is the data the user-described template is rendered with
type userDescribedData struct {
	PromptType      string
	UserDescription string
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file, or the embedded catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prompt catalog: %w", err)
	}
	if strings.TrimSpace(c.Article.System) == "" {
		return nil, fmt.Errorf("prompt catalog: article.system is required")
	}
	if strings.TrimSpace(c.Description.UserDescribed) == "" {
		return nil, fmt.Errorf("prompt catalog: description.user_described is required")
	}

	tmpl, err := template.New("user_described").Option("missingkey=error").Parse(c.Description.UserDescribed)
	if err != nil {
		return nil, fmt.Errorf("prompt catalog: invalid user_described template: %w", err)
	}
	c.userDescribed = tmpl
	return &c, nil
}

// ArticleSystemPrompt returns the system instruction for title generation
func (c *Catalog) ArticleSystemPrompt() string {
	return c.Article.System
}

// Select picks exactly one template: a custom template verbatim, else the
// user-described template, else the fixed template for the prompt type.
// An unknown prompt type with neither override yields ErrInvalidPromptType.
func (c *Catalog) Select(promptType, customTemplate, userDescription string) (Selection, error) {
	switch {
	case customTemplate != "":
		return Selection{Source: SourceCustom, Prompt: customTemplate}, nil

	case userDescription != "":
		var b strings.Builder
		err := c.userDescribed.Execute(&b, userDescribedData{
			PromptType:      promptType,
			UserDescription: userDescription,
		})
		if err != nil {
			return Selection{}, fmt.Errorf("failed to render user described template: %w", err)
		}
		return Selection{Source: SourceUserDescribed, Prompt: b.String()}, nil
	}

	if fixed, ok := c.Description.Fixed[promptType]; ok && fixed != "" {
		return Selection{Source: SourceFixed, Prompt: fixed}, nil
	}
	return Selection{}, ErrInvalidPromptType
}

// PromptTypes lists the prompt types with a fixed template
func (c *Catalog) PromptTypes() []string {
	types := make([]string, 0, len(c.Description.Fixed))
	for t := range c.Description.Fixed {
		types = append(types, t)
	}
	return types
}
