// Package prompt defines the core domain type for curated prompts.
package prompt

import (
	"errors"
	"regexp"
	"slices"
	"strings"
)

// Prompt is a named, tagged text record.
type Prompt struct {
	ID          string   `json:"id"`          // Required: unique identifier, natural key for upserts
	Title       string   `json:"title"`       // Display name
	Content     string   `json:"content"`     // Prompt body
	Description *string  `json:"description"` // Optional, serialized as null when unset
	Category    *string  `json:"category"`    // Optional grouping label
	Tags        []string `json:"tags"`        // Ordered; order is not significant for matching
}

// Display fallbacks for optional fields.
const (
	NoDescription = "No description provided."
	Uncategorized = "uncategorized"
)

// IDPattern is the pattern for ids created from the CLI.
// Must start with alphanumeric, followed by alphanumeric, hyphens, or underscores.
var IDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Validation errors.
var (
	ErrEmptyID   = errors.New("id is required")
	ErrInvalidID = errors.New("id must match pattern: lowercase alphanumeric, hyphens, underscores; must start with alphanumeric")
	ErrNotFound  = errors.New("prompt not found")
)

// New returns a prompt with no description, category or tags.
func New(id, title, content string) Prompt {
	return Prompt{
		ID:      id,
		Title:   title,
		Content: content,
		Tags:    []string{},
	}
}

// Validate checks the invariants every stored prompt must satisfy.
func (p *Prompt) Validate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	return nil
}

// ValidateID validates an id supplied on the command line.
func ValidateID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if !IDPattern.MatchString(id) {
		return ErrInvalidID
	}
	return nil
}

// Normalize replaces a nil tag slice with an empty one so the prompt
// serializes as "tags":[].
func (p *Prompt) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// DescriptionOr returns the description, or def when it is unset.
func (p *Prompt) DescriptionOr(def string) string {
	if p.Description == nil {
		return def
	}
	return *p.Description
}

// CategoryOr returns the category, or def when it is unset.
func (p *Prompt) CategoryOr(def string) string {
	if p.Category == nil {
		return def
	}
	return *p.Category
}

// Matches reports whether the prompt matches a case-insensitive substring
// query over id, title, description, category and tags.
// A blank query matches every prompt.
func (p *Prompt) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), q)
	}

	if contains(p.ID) || contains(p.Title) {
		return true
	}
	if p.Description != nil && contains(*p.Description) {
		return true
	}
	if p.Category != nil && contains(*p.Category) {
		return true
	}
	return slices.ContainsFunc(p.Tags, contains)
}

// Filter returns the prompts matching query, preserving order.
func Filter(prompts []Prompt, query string) []Prompt {
	var matches []Prompt
	for _, p := range prompts {
		if p.Matches(query) {
			matches = append(matches, p)
		}
	}
	return matches
}

// HasTag reports whether the prompt carries tag (case-insensitive).
func (p *Prompt) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Equal reports whether two prompts have identical fields.
// A nil tag slice equals an empty one.
func Equal(a, b Prompt) bool {
	if a.ID != b.ID || a.Title != b.Title || a.Content != b.Content {
		return false
	}
	if !equalOptional(a.Description, b.Description) || !equalOptional(a.Category, b.Category) {
		return false
	}
	return slices.Equal(a.Tags, b.Tags)
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives an id from a title: lowercase, runs of other characters
// collapsed to a single hyphen. Returns "" when nothing usable remains.
func Slugify(title string) string {
	slug := slugInvalid.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
