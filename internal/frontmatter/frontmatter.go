// Package frontmatter splits a prompt file into its YAML front-matter block and body.
//
// A front-matter block starts on the first line with "---" and ends at the next
// line consisting of "---". Only the recognised keys title, description, tags and
// category are decoded; any other keys are ignored.
package frontmatter

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// blockPattern matches a leading front-matter block including its closing delimiter line.
var blockPattern = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(?:(.*?)\r?\n)?---[ \t]*(?:\r?\n|\z)`)

// Metadata holds the recognised front-matter keys.
type Metadata struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category"`
	Tags        TagList `yaml:"tags"`
}

// TagList decodes either a YAML sequence or a comma-separated scalar.
type TagList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		tags := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: tags must be scalars", item.Line)
			}
			if v := strings.TrimSpace(item.Value); v != "" {
				tags = append(tags, v)
			}
		}
		*t = tags
	case yaml.ScalarNode:
		var tags []string
		for _, part := range strings.Split(node.Value, ",") {
			if v := strings.TrimSpace(part); v != "" {
				tags = append(tags, v)
			}
		}
		*t = tags
	default:
		return fmt.Errorf("line %d: tags must be a list or a comma-separated string", node.Line)
	}
	return nil
}

// Result is the outcome of Parse.
type Result struct {
	Metadata Metadata
	Body     string
	// HasBlock reports whether a front-matter block was present.
	HasBlock bool
}

// Parse splits text into metadata and body.
// Text without a leading block is returned unchanged as the body.
// A block that is not valid YAML is an error.
func Parse(text string) (Result, error) {
	// Tolerate a UTF-8 byte order mark before the opening delimiter
	src := strings.TrimPrefix(text, "\ufeff")

	loc := blockPattern.FindStringSubmatchIndex(src)
	if loc == nil {
		return Result{Body: text}, nil
	}

	res := Result{
		Body:     src[loc[1]:],
		HasBlock: true,
	}

	if loc[2] < 0 {
		// Empty block: "---\n---"
		return res, nil
	}

	raw := src[loc[2]:loc[3]]
	if strings.TrimSpace(raw) == "" {
		return res, nil
	}

	if err := yaml.Unmarshal([]byte(raw), &res.Metadata); err != nil {
		return Result{}, fmt.Errorf("parse front-matter: %w", err)
	}

	res.Metadata.Title = strings.TrimSpace(res.Metadata.Title)
	res.Metadata.Description = strings.TrimSpace(res.Metadata.Description)
	res.Metadata.Category = strings.Trim(strings.TrimSpace(res.Metadata.Category), "/")

	return res, nil
}
