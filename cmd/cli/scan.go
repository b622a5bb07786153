package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/JuanJml01/Lector/internal/analyzer"
	"github.com/JuanJml01/Lector/internal/config"
	"github.com/JuanJml01/Lector/internal/scan"
	"github.com/JuanJml01/Lector/internal/source"
)

func scanCmd() *cobra.Command {
	var (
		includes []string
		excludes []string
		workers  int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "scan [PATH|REPO_URL]",
		Short: "Analyze every matching file under a directory or repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			target := "."
			if len(args) > 0 {
				target = args[0]
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			root := target
			if source.IsRepoURL(target) {
				info, err := source.ParseRepoURL(target)
				if err != nil {
					return fmt.Errorf("invalid repository URL: %w", err)
				}
				cloned, err := source.NewCloneService(cfg.WorkspaceDir, cfg.GitHubToken).Clone(ctx, info)
				if err != nil {
					return fmt.Errorf("failed to clone repository: %w", err)
				}
				root = cloned.Path
			}

			projectCfg, err := config.LoadProjectConfig(root)
			if err != nil {
				return fmt.Errorf("failed to load project config: %w", err)
			}
			projectCfg.Merge(&config.ProjectConfig{
				Include:     includes,
				Exclude:     excludes,
				ScanWorkers: workers,
			})

			walker := source.NewWalker(projectCfg.Include, projectCfg.Exclude)
			files, err := walker.Walk(root)
			if err != nil {
				return fmt.Errorf("failed to walk %s: %w", root, err)
			}
			if len(files) == 0 {
				fmt.Println("No matching files found.")
				return nil
			}

			workerCount := cfg.ScanWorkers
			if projectCfg.ScanWorkers > 0 {
				workerCount = projectCfg.ScanWorkers
			}

			var progress scan.Progress
			if !asJSON {
				bar := progressbar.NewOptions(len(files),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionSetDescription("Scanning"),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprintln(os.Stderr)
					}),
				)
				progress = func(done, total int, path string) {
					bar.Add(1)
				}
			}

			scanner := scan.NewScanner(analyzer.NewRegistry(), workerCount)
			results, summary := scanner.ScanFiles(ctx, root, files, progress)

			if asJSON {
				out, err := json.MarshalIndent(map[string]any{
					"summary": summary,
					"files":   results,
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			printScanSummary(results, summary)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&includes, "include", nil, "Include glob pattern (repeatable)")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "Exclude glob pattern (repeatable)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker count (defaults to SCAN_WORKERS)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print full results as JSON")

	return cmd
}

func printScanSummary(results []scan.FileResult, summary *scan.Summary) {
	fmt.Printf("Scanned %d files: %d functions, %d classes\n",
		summary.Files, summary.Functions, summary.Classes)
	if summary.Errored > 0 {
		fmt.Printf("%d files failed:\n", summary.Errored)
		for _, fr := range results {
			if fr.Error != "" {
				fmt.Printf("  %s: %s\n", fr.Path, fr.Error)
			}
		}
	}
}
