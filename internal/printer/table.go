package printer

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/slok/swemas/internal/llm"
	"github.com/slok/swemas/internal/model"
)

// TablePrinter prints run information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintRunList prints runs in a table format.
func (t *TablePrinter) PrintRunList(runs []model.Run) error {
	if len(runs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tTASK\tINSTANCE\tSTATUS\tFAIL_TO_PASS\tPASS_TO_PASS\tSTEPS\tCREATED")
	for _, r := range runs {
		instance := r.InstanceID
		if instance == "" {
			instance = "-"
		}
		f2p, p2p := "-", "-"
		if r.Status != model.RunStatusErrored {
			f2p, p2p = FormatRatio(r.Results.FailToPass), FormatRatio(r.Results.PassToPass)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.ID,
			r.Index,
			instance,
			r.Status,
			f2p,
			p2p,
			r.Steps,
			TimeAgo(r.CreatedAt),
		)
	}

	return nil
}

// PrintRun prints the details of a run.
func (t *TablePrinter) PrintRun(r model.Run) error {
	fmt.Fprintf(t.writer, "ID:            %s\n", r.ID)
	fmt.Fprintf(t.writer, "Task:          %d\n", r.Index)
	fmt.Fprintf(t.writer, "Instance:      %s\n", r.InstanceID)
	fmt.Fprintf(t.writer, "Status:        %s\n", r.Status)
	if r.Status == model.RunStatusErrored {
		fmt.Fprintf(t.writer, "Error:         %s\n", r.Error)
	} else {
		fmt.Fprintf(t.writer, "FAIL_TO_PASS:  %s\n", FormatRatio(r.Results.FailToPass))
		fmt.Fprintf(t.writer, "PASS_TO_PASS:  %s\n", FormatRatio(r.Results.PassToPass))
	}
	fmt.Fprintf(t.writer, "Steps:         %d\n", r.Steps)
	fmt.Fprintf(t.writer, "Created:       %s\n", FormatTimestamp(r.CreatedAt))

	if r.Plan != "" {
		fmt.Fprintf(t.writer, "\nPlan:\n%s\n", indent(r.Plan))
	}
	if r.Output != "" {
		fmt.Fprintf(t.writer, "\nOutput:\n%s\n", indent(r.Output))
	}

	return nil
}

// PrintTools prints the tools with their arguments in a table format.
func (t *TablePrinter) PrintTools(tools []llm.ToolSchema) error {
	if len(tools) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tARGUMENTS\tDESCRIPTION")
	for _, tl := range tools {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", tl.Name, strings.Join(argNames(tl.Parameters), ","), Truncate(tl.Description, 80))
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

// argNames returns the sorted argument names of a JSON schema object, required ones are marked with `*`.
func argNames(schema map[string]any) []string {
	props, _ := schema["properties"].(map[string]any)
	required := map[string]bool{}
	switch req := schema["required"].(type) {
	case []string:
		for _, r := range req {
			required[r] = true
		}
	case []any:
		for _, r := range req {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		if required[name] {
			name += "*"
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
