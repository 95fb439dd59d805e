package prompt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePrompts() []Prompt {
	a := New("idea-wizard", "Idea Wizard", "Generate ideas")
	a.Description = StringPtr("Brainstorming helper")
	a.Category = StringPtr("ideation")
	a.Tags = []string{"brainstorm"}

	b := New("debug-helper", "Debug Helper", "Debug issues")
	b.Description = StringPtr("Troubleshoot errors")
	b.Category = StringPtr("debugging")
	b.Tags = []string{"bugfix", "errors"}

	return []Prompt{a, b}
}

func TestValidate(t *testing.T) {
	p := New("", "Untitled", "body")
	assert.ErrorIs(t, p.Validate(), ErrEmptyID)

	p.ID = "anything goes"
	assert.NoError(t, p.Validate())
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr error
	}{
		{"idea-wizard", nil},
		{"a", nil},
		{"v2_prompt", nil},
		{"", ErrEmptyID},
		{"-leading", ErrInvalidID},
		{"Upper", ErrInvalidID},
		{"has space", ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	prompts := samplePrompts()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"blank query returns all", "", []string{"idea-wizard", "debug-helper"}},
		{"whitespace query returns all", "   ", []string{"idea-wizard", "debug-helper"}},
		{"tag match is case-insensitive", "BUGFIX", []string{"debug-helper"}},
		{"title match", "wizard", []string{"idea-wizard"}},
		{"description match", "troubleshoot", []string{"debug-helper"}},
		{"category match", "ideation", []string{"idea-wizard"}},
		{"no match", "nothing-here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, p := range Filter(prompts, tt.query) {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatches_ContentIsNotSearched(t *testing.T) {
	p := New("plain", "Plain", "secret body text")
	assert.False(t, p.Matches("secret"))
}

func TestFallbacks(t *testing.T) {
	p := New("x", "X", "body")
	assert.Equal(t, NoDescription, p.DescriptionOr(NoDescription))
	assert.Equal(t, Uncategorized, p.CategoryOr(Uncategorized))

	p.Description = StringPtr("described")
	p.Category = StringPtr("misc")
	assert.Equal(t, "described", p.DescriptionOr(NoDescription))
	assert.Equal(t, "misc", p.CategoryOr(Uncategorized))
}

func TestEqual(t *testing.T) {
	a := New("a", "A", "x")
	b := New("a", "A", "x")
	b.Tags = nil
	assert.True(t, Equal(a, b), "nil and empty tags should compare equal")

	b.Description = StringPtr("")
	assert.False(t, Equal(a, b), "null and empty description differ")

	c := New("a", "A", "x")
	c.Tags = []string{"one", "two"}
	d := New("a", "A", "x")
	d.Tags = []string{"two", "one"}
	assert.False(t, Equal(c, d))
}

func TestJSONShape(t *testing.T) {
	p := New("a", "A", "x")
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","title":"A","content":"x","description":null,"category":null,"tags":[]}`, string(data))

	var decoded Prompt
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b","title":"B","content":"y"}`), &decoded))
	assert.Nil(t, decoded.Description)
	assert.Nil(t, decoded.Tags)
	decoded.Normalize()
	assert.Equal(t, []string{}, decoded.Tags)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Idea Wizard", "idea-wizard"},
		{"  Debug -- Helper!  ", "debug-helper"},
		{"v2.0 Release Notes", "v2-0-release-notes"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "Slugify(%q)", tt.title)
	}
}

func TestHasTag(t *testing.T) {
	p := samplePrompts()[1]
	assert.True(t, p.HasTag("Errors"))
	assert.False(t, p.HasTag("brainstorm"))
}
