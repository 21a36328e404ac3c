package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
	"github.com/FLFTraining/TLC-Dashboard/internal/output"
)

var (
	healthJSON   bool
	healthStrict bool
	healthLimit  int
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report data quality issues in the export",
	Long: `Check every row of the export for missing fields, unparseable scores and
unparseable enrollment dates. Such rows are still loaded: a missing value is
treated as absent and the row is left out of the views keyed on it.

Exit codes:
  0  No issues, or issues without --strict
  1  Issues present and --strict is set

Use --json for machine-readable output in CI/CD pipelines.`,
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "output as JSON")
	healthCmd.Flags().BoolVar(&healthStrict, "strict", false, "exit with status 1 when issues are found")
	healthCmd.Flags().IntVarP(&healthLimit, "limit", "n", 20, "maximum issues to list (0 for all)")
}

// HealthResult is the health report of one dataset.
type HealthResult struct {
	Status string                    `json:"status"`
	Path   string                    `json:"path"`
	Rows   int                       `json:"rows"`
	Counts map[dataset.IssueKind]int `json:"counts"`
	Issues []dataset.RowIssue        `json:"issues"`
}

func runHealth(cmd *cobra.Command, args []string) error {
	w, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	result := newHealthResult(w.data)

	if healthJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode health report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		displayHealth(cmd, result)
	}

	if healthStrict && len(result.Issues) > 0 {
		return NewExitError(1, fmt.Sprintf("%d data quality issues found", len(result.Issues)))
	}
	return nil
}

func newHealthResult(ds *dataset.Dataset) HealthResult {
	result := HealthResult{
		Status: "ok",
		Path:   ds.Path,
		Rows:   ds.Len(),
		Counts: dataset.CountByKind(ds.Issues),
		Issues: ds.Issues,
	}
	if result.Issues == nil {
		result.Issues = []dataset.RowIssue{}
	}
	if len(result.Issues) > 0 {
		result.Status = "issues"
	}
	return result
}

func displayHealth(cmd *cobra.Command, result HealthResult) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, output.Header("Data Health", screenWidth))
	fmt.Fprintf(out, "Dataset: %s\n", result.Path)
	fmt.Fprintf(out, "Rows:    %d\n\n", result.Rows)

	if len(result.Issues) == 0 {
		fmt.Fprintf(out, "%s No issues found\n", output.Checkmark(true))
		return
	}

	kinds := make([]string, 0, len(result.Counts))
	for kind := range result.Counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	counts := output.NewTable("Issue", "Count").AlignRight(1)
	for _, kind := range kinds {
		counts.AddRow(kind, strconv.Itoa(result.Counts[dataset.IssueKind(kind)]))
	}
	fmt.Fprint(out, counts.RenderCompact())
	fmt.Fprintln(out)

	shown := result.Issues
	if healthLimit > 0 && len(shown) > healthLimit {
		shown = shown[:healthLimit]
	}

	list := output.NewTable("Row", "Issue", "Field", "Value").AlignRight(0)
	for _, issue := range shown {
		list.AddRow(strconv.Itoa(issue.Row), string(issue.Kind), issue.Field, output.TruncateCell(issue.Value, 30))
	}
	fmt.Fprint(out, list.RenderCompact())

	if hidden := len(result.Issues) - len(shown); hidden > 0 {
		fmt.Fprintf(out, "... and %d more (use --limit 0 to list all)\n", hidden)
	}
	fmt.Fprintf(out, "%s %d issues in %d rows\n", output.Checkmark(false), len(result.Issues), rowsWithIssues(result.Issues))
}

func rowsWithIssues(issues []dataset.RowIssue) int {
	rows := make(map[int]struct{})
	for _, issue := range issues {
		rows[issue.Row] = struct{}{}
	}
	return len(rows)
}
