package git

import (
	"fmt"
	"path"
	"strings"

	"github.com/slok/swemas/internal/model"
)

// Clone flags that take a value as the next argument.
var cloneValueFlags = map[string]struct{}{
	"-b":          {},
	"--branch":    {},
	"-o":          {},
	"--origin":    {},
	"--depth":     {},
	"-c":          {},
	"--config":    {},
	"--reference": {},
}

// ParseCloneCommand parses a shell clone command with the form
// `git clone <url> [<dir>] [&& cd <dir>] [&& git checkout <commit>]`.
//
// The repository name is the clone directory argument when present, otherwise the
// URL base name without the `.git` suffix.
func ParseCloneCommand(cmd string) (model.CloneSpec, error) {
	segments := strings.Split(cmd, "&&")

	fields := strings.Fields(segments[0])
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "clone" {
		return model.CloneSpec{}, fmt.Errorf("%q is not a git clone command: %w", strings.TrimSpace(segments[0]), model.ErrNotValid)
	}

	var positional []string
	for i := 2; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "-") {
			if _, ok := cloneValueFlags[f]; ok {
				i++
			}
			continue
		}
		positional = append(positional, f)
	}
	if len(positional) == 0 {
		return model.CloneSpec{}, fmt.Errorf("missing repository URL on clone command: %w", model.ErrNotValid)
	}

	spec := model.CloneSpec{URL: positional[0]}
	if len(positional) > 1 {
		spec.Name = positional[1]
	} else {
		spec.Name = repoNameFromURL(spec.URL)
	}

	for _, seg := range segments[1:] {
		f := strings.Fields(seg)
		if len(f) >= 3 && f[0] == "git" && f[1] == "checkout" {
			spec.Commit = f[len(f)-1]
		}
	}

	if err := spec.Validate(); err != nil {
		return model.CloneSpec{}, err
	}

	return spec, nil
}

func repoNameFromURL(url string) string {
	url = strings.TrimRight(url, "/")
	// scp like URLs (git@github.com:org/repo.git).
	if i := strings.LastIndex(url, ":"); i > strings.LastIndex(url, "/") {
		url = url[i+1:]
	}
	return strings.TrimSuffix(path.Base(url), ".git")
}
