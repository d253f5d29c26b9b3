package prompts

import "strings"

const (
	titlePrefix       = "Title:"
	descriptionPrefix = "Description:"
)

// ParsedDescription holds the fields read from a model's free-text answer
type ParsedDescription struct {
	Title       string
	Description string
}

// ParseDescription scans text line by line for the Title: and Description:
// prefixes. The last matching line wins; a missing prefix leaves the field empty.
func ParseDescription(text string) ParsedDescription {
	var p ParsedDescription
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, titlePrefix):
			p.Title = strings.TrimSpace(line[len(titlePrefix):])
		case strings.HasPrefix(line, descriptionPrefix):
			p.Description = strings.TrimSpace(line[len(descriptionPrefix):])
		}
	}
	return p
}
