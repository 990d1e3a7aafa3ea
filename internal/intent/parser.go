package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ErrParse marks model output that could not be turned into Tasks.
var ErrParse = errors.New("intent: unparseable model output")

// ParseTasks decodes the model's decomposition response. The response must be
// a JSON array of task objects (a single top-level object is tolerated and
// wrapped). Unknown fields are rejected so schema drift in the model surfaces
// here instead of as silently dropped slots.
func ParseTasks(raw string) ([]Task, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrParse)
	}

	var top any
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var items []any
	switch v := top.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil, fmt.Errorf("%w: unexpected top-level %T", ErrParse, top)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty task list", ErrParse)
	}

	tasks := make([]Task, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: task %d is %T, not an object", ErrParse, i, item)
		}

		var t Task
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &t,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, fmt.Errorf("building task decoder: %w", err)
		}
		if err := dec.Decode(obj); err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", ErrParse, i, err)
		}
		if t.Intent == "" {
			return nil, fmt.Errorf("%w: task %d has no intent", ErrParse, i)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
