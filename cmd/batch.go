package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/adalundhe/layerkit/core/document"
)

var (
	batchConcurrency int
	batchJSON        bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <export.json>...",
	Short: "Check many level exports at once",
	Long: `Build every given export concurrently and report which ones fail.

A failing document (unreadable, or a capture graph without a single start,
end or connecting route) is reported and skipped; the others still run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Documents processed at once (default from config)")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Output as JSON")
}

// batchOutput is the JSON output of the batch command.
type batchOutput struct {
	Processed int            `json:"processed"`
	Failed    []batchFailure `json:"failed"`
}

type batchFailure struct {
	Path       string `json:"path"`
	Error      string `json:"error"`
	Structural bool   `json:"structural"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	run := *cfg
	if batchConcurrency > 0 {
		run.Batch.Concurrency = batchConcurrency
	}

	res, err := document.ProcessAll(context.Background(), args, &run, logger, nil)
	if err != nil {
		return err
	}

	output := batchOutput{Processed: res.Processed, Failed: []batchFailure{}}
	for _, f := range res.Failures {
		output.Failed = append(output.Failed, batchFailure{
			Path:       f.Path,
			Error:      f.Err.Error(),
			Structural: f.Structural,
		})
	}

	out := cmd.OutOrStdout()
	if wantJSON(out, batchJSON) {
		err = writeJSON(out, output)
	} else {
		err = printBatch(out, output, len(args))
	}
	if err != nil {
		return err
	}

	if len(output.Failed) > 0 {
		return fmt.Errorf("%d of %d documents failed", len(output.Failed), len(args))
	}
	return nil
}

func printBatch(w io.Writer, output batchOutput, total int) error {
	fmt.Fprintf(w, "%d/%d documents ok\n", output.Processed, total)
	for _, f := range output.Failed {
		kind := "error"
		if f.Structural {
			kind = "structural"
		}
		fmt.Fprintf(w, "  FAIL [%s] %s: %s\n", kind, f.Path, f.Error)
	}
	return nil
}
