package agent

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

var fenceRegex = regexp.MustCompile("```(?i:json)?\\s*([\\s\\S]*?)\\s*```")

// ParseFailure carries model output that could not be read as a JSON object.
type ParseFailure struct {
	Text string
	Err  error
}

func (f *ParseFailure) Error() string {
	return "llm response is not a JSON object: " + f.Err.Error()
}

func (f *ParseFailure) Unwrap() error { return f.Err }

var errNotObject = errors.New("top-level value is not an object")

// ParseResponse extracts the JSON object from raw model output. A fenced
// block is preferred when present; otherwise the whole text is parsed.
// Numbers are kept as json.Number. Anything that is not exactly one JSON
// object yields a *ParseFailure holding raw unchanged.
func ParseResponse(raw string) (map[string]any, error) {
	candidate := raw
	if m := fenceRegex.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	}

	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ParseFailure{Text: raw, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseFailure{Text: raw, Err: errors.New("trailing data after JSON value")}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ParseFailure{Text: raw, Err: errNotObject}
	}
	return obj, nil
}
