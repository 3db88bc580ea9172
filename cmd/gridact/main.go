// Package main provides the CLI entry point for gridact.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridact/gridact-go/pkg/gridact"
)

var (
	actionsPath string
	outputPath  string
	verbose     bool
	dryRun      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridact [workbook.xlsx]",
		Short: "Apply declarative actions to a spreadsheet",
		Long: `gridact reads a batch of action records (values, formula, chart, sort,
filter, removeDuplicates, ...) from an actions file and applies them to an
xlsx workbook in order. Failed actions are reported; the batch continues.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&actionsPath, "actions", "a", "", "Actions file (YAML or JSON, required)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path (default: in place)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log dispatch diagnostics to stderr")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Execute the batch without saving the workbook")
	rootCmd.MarkFlagRequired("actions")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	actions, err := gridact.LoadActions(actionsPath)
	if err != nil {
		return fmt.Errorf("failed to load actions: %w", err)
	}

	opts := gridact.DefaultOptions()
	opts.OutputPath = outputPath
	opts.DryRun = dryRun
	if verbose {
		opts.Logger = log.New(os.Stderr, "gridact: ", 0)
	}

	results, err := gridact.ApplyFile(cmd.Context(), inputPath, actions, opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
			fmt.Fprintf(os.Stderr, "action %d (%s): failed: %v\n", res.Index, res.Type, res.Err)
			continue
		}
		line := fmt.Sprintf("action %d (%s): %s", res.Index, res.Type, res.State)
		if res.Type == "removeDuplicates" {
			line += fmt.Sprintf(", removed %d rows", res.RemovedCount)
		}
		if res.ChartRef != "" {
			line += ", chart at " + res.ChartRef
		}
		fmt.Println(line)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d actions failed", failed, len(results))
	}
	return nil
}
