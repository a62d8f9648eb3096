package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var projectName string
	var driver string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new osurebuild project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName, driver)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&driver, "driver", "parquet", "Dataset driver (parquet, sqlite or postgres)")
	return cmd
}

func runInit(projectName, driver string) error {
	configPath := "osurebuild.yaml"
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	var datasetBlock string
	switch driver {
	case "parquet":
		datasetBlock = "dataset:\n  driver: parquet\n  path: ./dataset/\n"
	case "sqlite":
		datasetBlock = "dataset:\n  driver: sqlite\n  dsn: sqlite://dataset.db\n"
	case "postgres":
		datasetBlock = "dataset:\n  driver: postgres\n  dsn: postgres://localhost:5432/osurebuild\n"
	default:
		return fmt.Errorf("unknown dataset driver: %s", driver)
	}

	contents := fmt.Sprintf("project: %s\nversion: 1\n\n%s\nassets: ./assets/\noutput: ./output/\nworkers: 4\n", projectName, datasetBlock)
	if err := os.WriteFile(configPath, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	return nil
}
