package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseToolArguments decodes the JSON arguments of a tool call. Models sometimes
// send malformed JSON (trailing commas, unquoted keys, truncated objects), in
// that case a repair is attempted before failing.
func ParseToolArguments(raw string) (args map[string]any, repaired bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, false, nil
	}

	if err := json.Unmarshal([]byte(raw), &args); err == nil {
		if args == nil {
			args = map[string]any{}
		}
		return args, false, nil
	}

	fixed, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return nil, false, fmt.Errorf("could not repair tool arguments: %w", err)
	}

	if err := json.Unmarshal([]byte(fixed), &args); err != nil {
		return nil, false, fmt.Errorf("could not decode repaired tool arguments: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}

	return args, true, nil
}
