// Package lib provides a Go SDK to use swemas programmatically.
//
// It gives access to the recorded task runs, the tools exposed to the agents and
// the repository editors, without shelling out to the swemas CLI binary.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	runs, _ := client.ListRuns(ctx, lib.ListRunsOpts{InstanceID: "django__django-11099"})
//	for _, r := range runs {
//	    fmt.Printf("%s: %s\n", r.ID, r.Status)
//	}
//
// # Editors
//
// The same editing operations the agents use are available on the repositories
// of the workspace (by default ~/.swemas/repos):
//
//	client.InsertAtLine(ctx, "repo_7/django", "setup.py", 1, "# patched")
//	fmt.Println(client.GetFileContent(ctx, "repo_7/django", "setup.py"))
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrNotValid]: Invalid input (e.g. a line range out of the file).
//
// # Thread Safety
//
// A [Client] is safe for concurrent use, edits on the same file are not
// coordinated between goroutines.
package lib
