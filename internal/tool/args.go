package tool

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/slok/swemas/internal/model"
)

func argString(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", fmt.Errorf("missing required argument %q: %w", name, model.ErrNotValid)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T: %w", name, v, model.ErrNotValid)
	}

	return s, nil
}

// argInt accepts JSON numbers and numeric strings.
func argInt(args map[string]any, name string) (int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing required argument %q: %w", name, model.ErrNotValid)
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("argument %q must be an integer, got %v: %w", name, n, model.ErrNotValid)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer: %w", name, model.ErrNotValid)
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer, got %q: %w", name, n, model.ErrNotValid)
		}
		return i, nil
	}

	return 0, fmt.Errorf("argument %q must be an integer, got %T: %w", name, v, model.ErrNotValid)
}

// argStringSlice accepts a list of strings or a single string that is split by lines.
func argStringSlice(args map[string]any, name string) ([]string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("missing required argument %q: %w", name, model.ErrNotValid)
	}

	switch l := v.(type) {
	case []string:
		return l, nil
	case []any:
		res := make([]string, 0, len(l))
		for i, e := range l {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("argument %q element %d must be a string, got %T: %w", name, i, e, model.ErrNotValid)
			}
			res = append(res, s)
		}
		return res, nil
	case string:
		return strings.Split(strings.TrimSuffix(l, "\n"), "\n"), nil
	}

	return nil, fmt.Errorf("argument %q must be a list of strings, got %T: %w", name, v, model.ErrNotValid)
}
