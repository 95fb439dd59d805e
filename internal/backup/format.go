package backup

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matsen/promptvault/internal/prompt"
	"github.com/tidwall/gjson"
)

// MetaKey is the reserved top-level key wrapping the header record.
const MetaKey = "_meta"

// Header is the first line of an export file.
type Header struct {
	Meta HeaderMeta `json:"_meta"`
}

// HeaderMeta describes one export snapshot.
type HeaderMeta struct {
	Version       string `json:"version"`        // Data-version marker at export time
	Count         int    `json:"count"`          // Number of prompt lines that follow
	ExportedAt    string `json:"exported_at"`    // RFC3339
	SchemaVersion int    `json:"schema_version"` // Shape of the prompt records
}

// Encode writes the header line followed by one compact JSON line per
// prompt, in the given order.
func Encode(w io.Writer, meta HeaderMeta, prompts []prompt.Prompt) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(Header{Meta: meta}); err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}
	for i, p := range prompts {
		p.Normalize()
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding prompt %d (%s): %w", i, p.ID, err)
		}
	}
	return nil
}

// Decode parses an export file. The header is returned when the first
// non-blank line is a JSON object with a top-level "_meta" key; otherwise
// that line is decoded as a prompt like every other line. Blank lines are
// skipped. Any malformed line aborts decoding with a *LineError.
func Decode(r io.Reader) (*HeaderMeta, []prompt.Prompt, error) {
	var d decoder
	if err := scanLines(r, d.line); err != nil {
		return nil, nil, err
	}
	return d.meta, d.prompts, nil
}

// ReadHeader returns the header of the export file at path, or nil when the
// file has none. Only the first non-blank line is read.
func ReadHeader(path string) (*HeaderMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export file: %w", err)
	}
	defer f.Close()

	var meta *HeaderMeta
	err = scanLines(f, func(lineNum int, line []byte) error {
		m, isHeader, err := classifyFirstLine(line)
		if err != nil {
			return &LineError{Line: lineNum, Err: err}
		}
		if isHeader {
			meta = m
		}
		return errStopScan
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

var errStopScan = errors.New("stop scan")

// scanLines calls fn with each non-blank, trimmed line and its 1-based line
// number. Lines have no length limit. fn may return errStopScan to end the
// scan early without error.
func scanLines(r io.Reader, fn func(lineNum int, line []byte) error) error {
	br := bufio.NewReader(r)
	for lineNum := 1; ; lineNum++ {
		raw, readErr := br.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("reading line %d: %w", lineNum, readErr)
		}

		if line := bytes.TrimSpace(raw); len(line) > 0 {
			if err := fn(lineNum, line); err != nil {
				if errors.Is(err, errStopScan) {
					return nil
				}
				return err
			}
		}

		if readErr == io.EOF {
			return nil
		}
	}
}

type decoder struct {
	sawFirst bool
	meta     *HeaderMeta
	prompts  []prompt.Prompt
}

func (d *decoder) line(lineNum int, line []byte) error {
	if !d.sawFirst {
		d.sawFirst = true
		meta, isHeader, err := classifyFirstLine(line)
		if err != nil {
			return &LineError{Line: lineNum, Err: err}
		}
		if isHeader {
			d.meta = meta
			return nil
		}
	}

	p, err := decodePrompt(line)
	if err != nil {
		return &LineError{Line: lineNum, Err: err}
	}
	d.prompts = append(d.prompts, p)
	return nil
}

// classifyFirstLine decides whether line is a header. The check is
// structural: only an object whose own keys include "_meta" is a header,
// regardless of what its string values contain.
func classifyFirstLine(line []byte) (*HeaderMeta, bool, error) {
	if !gjson.ValidBytes(line) {
		return nil, false, ErrInvalidJSON
	}

	parsed := gjson.ParseBytes(line)
	if !parsed.IsObject() || !parsed.Get(MetaKey).Exists() {
		return nil, false, nil
	}

	meta, err := decodeHeader(line)
	if err != nil {
		return nil, false, err
	}
	return meta, true, nil
}

// wireHeader detects missing fields, which plain decoding would zero-fill.
type wireHeader struct {
	Meta *struct {
		Version       *string `json:"version"`
		Count         *int    `json:"count"`
		ExportedAt    *string `json:"exported_at"`
		SchemaVersion *int    `json:"schema_version"`
	} `json:"_meta"`
}

func decodeHeader(line []byte) (*HeaderMeta, error) {
	var wire wireHeader
	if err := json.Unmarshal(line, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	m := wire.Meta
	if m == nil {
		return nil, fmt.Errorf("%w: %s must be an object", ErrInvalidHeader, MetaKey)
	}
	switch {
	case m.Version == nil:
		return nil, fmt.Errorf("%w: missing version", ErrInvalidHeader)
	case m.Count == nil:
		return nil, fmt.Errorf("%w: missing count", ErrInvalidHeader)
	case m.ExportedAt == nil:
		return nil, fmt.Errorf("%w: missing exported_at", ErrInvalidHeader)
	case m.SchemaVersion == nil:
		return nil, fmt.Errorf("%w: missing schema_version", ErrInvalidHeader)
	}

	if *m.Count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidHeader, *m.Count)
	}
	if *m.SchemaVersion < 1 {
		return nil, fmt.Errorf("%w: schema_version must be at least 1, got %d", ErrInvalidHeader, *m.SchemaVersion)
	}
	if _, err := time.Parse(time.RFC3339, *m.ExportedAt); err != nil {
		return nil, fmt.Errorf("%w: exported_at: %v", ErrInvalidHeader, err)
	}

	return &HeaderMeta{
		Version:       *m.Version,
		Count:         *m.Count,
		ExportedAt:    *m.ExportedAt,
		SchemaVersion: *m.SchemaVersion,
	}, nil
}

func decodePrompt(line []byte) (prompt.Prompt, error) {
	var p prompt.Prompt
	if err := json.Unmarshal(line, &p); err != nil {
		return prompt.Prompt{}, fmt.Errorf("parsing prompt: %w", err)
	}
	if err := p.Validate(); err != nil {
		return prompt.Prompt{}, fmt.Errorf("invalid prompt: %w", err)
	}
	p.Normalize()
	return p, nil
}
