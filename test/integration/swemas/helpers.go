package swemas

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	// go test changes the CWD to the test package directory, so a relative path is ambiguous.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("SWEMAS_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("swemas binary not found at %q: %w", c.Binary, err)
	}
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git binary is required: %w", err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "SWEMAS_INTEGRATION"
		envBinary     = "SWEMAS_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{Binary: os.Getenv(envBinary)}
	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// newUpstreamRepo creates a git repository with a bug and returns its path and first commit.
func newUpstreamRepo(t *testing.T) (dir, commit string) {
	t.Helper()

	dir = t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "test")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "calc.py"), []byte("def div(a, b):\n    return a * b\n"), 0o644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "initial")
	commit = runGit(t, dir, "rev-parse", "HEAD")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("later\n"), 0o644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "later")

	return dir, commit
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	return strings.TrimSpace(string(out))
}

// newTaskAPI serves a single test case on index 1.
func newTaskAPI(t *testing.T, upstream, commit string) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/task/index/1" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Problem_statement": "div multiplies instead of dividing.",
			"git_clone":         fmt.Sprintf("git clone %s proj && cd proj && git checkout %s", upstream, commit),
			"FAIL_TO_PASS":      `["test_div"]`,
			"PASS_TO_PASS":      `[]`,
			"instance_id":       "calc__calc-1",
		})
	}))
	t.Cleanup(srv.Close)

	return srv.URL + "/task/index"
}

// newHarness considers the fix valid when the repository file divides.
func newHarness(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			InstanceID string `json:"instance_id"`
			RepoDir    string `json:"repoDir"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		data, err := os.ReadFile(filepath.Join(req.RepoDir, "calc.py"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		status := map[string][]string{"success": {}, "failure": {"test_div"}}
		if strings.Contains(string(data), "a / b") {
			status = map[string][]string{"success": {"test_div"}, "failure": {}}
		}
		output, _ := json.Marshal(map[string]any{
			req.InstanceID: map[string]any{
				"tests_status": map[string]any{
					"FAIL_TO_PASS": status,
					"PASS_TO_PASS": map[string][]string{"success": {}, "failure": {}},
				},
			},
		})
		_ = json.NewEncoder(w).Encode(map[string]string{"harnessOutput": string(output)})
	}))
	t.Cleanup(srv.Close)

	return srv.URL + "/test"
}

// newModel serves a scripted chat completions API: the planner answers with a plan,
// the coder fixes the file with find and replace and then finishes.
func newModel(t *testing.T) string {
	t.Helper()

	var (
		mu    sync.Mutex
		calls int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		call := calls
		mu.Unlock()

		message := map[string]any{"role": "assistant"}
		switch call {
		case 1:
			message["content"] = "1. Replace the multiplication in calc.py with a division."
		case 2:
			args, _ := json.Marshal(map[string]string{
				"repository_name": "repo_1/proj",
				"file_path":       "calc.py",
				"pattern":         `a \* b`,
				"replacement":     "a / b",
			})
			message["tool_calls"] = []map[string]any{{
				"id":       "call_1",
				"type":     "function",
				"function": map[string]any{"name": "find_and_replace", "arguments": string(args)},
			}}
		default:
			message["content"] = "The division is fixed."
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      fmt.Sprintf("chatcmpl-%d", call),
			"object":  "chat.completion",
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{"index": 0, "message": message, "finish_reason": "stop"}},
			"usage":   map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	t.Cleanup(srv.Close)

	return srv.URL + "/v1"
}
