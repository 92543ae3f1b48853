package checker

import (
	"encoding/json"
	"fmt"
	"strings"

	"adcheck/internal/domain"
)

// Shape selects which JSON span Extract looks for.
type Shape string

const (
	ShapeObject Shape = "object"
	ShapeArray  Shape = "array"
)

// Extract locates the JSON payload embedded in free-form model output and
// returns it verbatim. It takes the greedy span from the first opening
// delimiter to the last closing delimiter of the requested kind, then
// requires the span to be strictly valid JSON. No repair, no retry, no
// semantic validation; callers check field types and enum membership.
func Extract(raw string, shape Shape) (json.RawMessage, error) {
	opener, closer := "{", "}"
	if shape == ShapeArray {
		opener, closer = "[", "]"
	}

	start := strings.Index(raw, opener)
	end := strings.LastIndex(raw, closer)
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no %s span in output", domain.ErrNoJSONFound, shape)
	}

	span := raw[start : end+1]
	if !json.Valid([]byte(span)) {
		return nil, fmt.Errorf("%w: matched %s span", domain.ErrInvalidJSON, shape)
	}

	return json.RawMessage(span), nil
}
