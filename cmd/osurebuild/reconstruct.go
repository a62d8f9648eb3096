package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"osurebuild/internal/config"
	"osurebuild/internal/rebuild"
)

var (
	reconstructFolder  string
	reconstructLimit   int
	reconstructWorkers int
	reconstructOutput  string
)

func reconstructCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconstruct",
		Short: "Rebuild beatmap folders from the dataset",
		RunE:  runReconstruct,
	}
	cmd.Flags().StringVar(&reconstructFolder, "folder", "", "Rebuild a single folder id")
	cmd.Flags().IntVar(&reconstructLimit, "limit", 0, "Cap the number of folders rebuilt (0 = all)")
	cmd.Flags().IntVar(&reconstructWorkers, "workers", 0, "Folder worker pool size (0 = config value)")
	cmd.Flags().StringVar(&reconstructOutput, "output", "", "Output directory (overrides config)")
	return cmd
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig("osurebuild.yaml")
	if err != nil {
		return err
	}

	src, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer src.Close(ctx)

	output := cfg.Output
	if reconstructOutput != "" {
		output = reconstructOutput
	}
	workers := cfg.Workers
	if reconstructWorkers > 0 {
		workers = reconstructWorkers
	}

	rec := rebuild.New(cfg.Assets)

	opts := rebuild.BatchOptions{
		Limit:   reconstructLimit,
		Workers: workers,
		OnFolder: func(result *rebuild.FolderResult, err error) {
			if err != nil {
				fmt.Fprintf(os.Stdout, "  %v\n", err)
				return
			}
			fmt.Fprintf(os.Stdout, "  %s: %d files, %d assets", result.FolderID, len(result.FilesWritten), result.AssetsCopied)
			if len(result.Errors) > 0 {
				fmt.Fprintf(os.Stdout, " (%d skipped)", len(result.Errors))
			}
			fmt.Fprintln(os.Stdout, "")
			for _, item := range result.Errors {
				fmt.Fprintf(os.Stdout, "    - %v\n", item)
			}
		},
	}
	if reconstructFolder != "" {
		opts.FolderIDs = []string{reconstructFolder}
	}

	result, err := rebuild.RunBatch(ctx, src, rec, output, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Reconstruction complete.")
	fmt.Fprintf(os.Stdout, "  Folders:   %d\n", result.Folders)
	fmt.Fprintf(os.Stdout, "  Succeeded: %d\n", result.Succeeded)
	fmt.Fprintf(os.Stdout, "  Failed:    %d\n", result.Failed)

	if result.Failed > 0 {
		return fmt.Errorf("reconstruction completed with failed folders")
	}
	return nil
}
