// Package env has helpers to build subprocess environments.
package env

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

var keyRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseSpecs parses `KEY=VALUE` or `KEY` environment specs. A bare `KEY` takes its value
// from the current process environment. Later specs override earlier ones.
func ParseSpecs(specs []string) (map[string]string, error) {
	res := make(map[string]string, len(specs))
	for _, spec := range specs {
		if spec == "" {
			return nil, fmt.Errorf("environment variable spec can't be empty")
		}

		key, value, hasValue := strings.Cut(spec, "=")
		if !keyRegexp.MatchString(key) {
			return nil, fmt.Errorf("invalid environment variable key %q", key)
		}

		if !hasValue {
			v, ok := os.LookupEnv(key)
			if !ok {
				return nil, fmt.Errorf("environment variable %q is not set", key)
			}
			value = v
		}
		res[key] = value
	}

	return res, nil
}

// FromList converts a `KEY=VALUE` list (like os.Environ) into a map, malformed entries are ignored.
func FromList(list []string) map[string]string {
	res := make(map[string]string, len(list))
	for _, kv := range list {
		if k, v, ok := strings.Cut(kv, "="); ok {
			res[k] = v
		}
	}
	return res
}

// ToList converts an environment map into a sorted `KEY=VALUE` list.
func ToList(m map[string]string) []string {
	res := make([]string, 0, len(m))
	for k, v := range m {
		res = append(res, k+"="+v)
	}
	sort.Strings(res)
	return res
}

// Merge returns a new map with the override values on top of the base ones.
func Merge(base, override map[string]string) map[string]string {
	res := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		res[k] = v
	}
	for k, v := range override {
		res[k] = v
	}
	return res
}
