package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"osurebuild/internal/config"
)

func foldersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List folder ids present in the dataset",
		Args:  cobra.NoArgs,
		RunE:  runFolders,
	}
}

func runFolders(cmd *cobra.Command, args []string) error {
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

	ids, err := src.FolderIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Fprintln(os.Stdout, id)
	}
	fmt.Fprintf(os.Stdout, "%d folders\n", len(ids))
	return nil
}
