package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/promptvault/internal/prompt"
)

// Constants for output formatting.
const (
	ListTitleMaxLen     = 50 // Used in list and search output
	DetailTextWrapWidth = 68 // Wrap width for detail views
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// TransferResponse is the response for export and import.
type TransferResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
	Count  int    `json:"count"`
}

// IDResponse is the response for commands acting on a single prompt.
type IDResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	ExportPath string `json:"export_path"`
	AutoExport bool   `json:"auto_export"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// printPromptList prints one line per prompt.
func printPromptList(prompts []prompt.Prompt) {
	for _, p := range prompts {
		fmt.Printf("  %-24s %-16s %s\n", p.ID, p.CategoryOr(prompt.Uncategorized), truncateString(p.Title, ListTitleMaxLen))
	}
}

func printPromptDetail(p prompt.Prompt) {
	fmt.Println(p.ID)
	fmt.Println(strings.Repeat("═", 70))
	fmt.Println()

	fmt.Printf("Title:       %s\n", p.Title)
	fmt.Printf("Category:    %s\n", p.CategoryOr(prompt.Uncategorized))
	if len(p.Tags) > 0 {
		fmt.Printf("Tags:        %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Println()
	fmt.Printf("Description: %s\n", wrapText(p.DescriptionOr(prompt.NoDescription), DetailTextWrapWidth-13, "             "))
	fmt.Println()
	fmt.Println("Content:")
	fmt.Println(strings.Repeat("─", 70))
	fmt.Println(p.Content)
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}
