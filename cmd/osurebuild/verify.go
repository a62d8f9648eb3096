package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"osurebuild/internal/config"
	"osurebuild/internal/verify"
)

var verifyFolder string

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run referential-integrity checks against the dataset",
		RunE:  runVerify,
	}
	cmd.Flags().StringVar(&verifyFolder, "folder", "", "Check a single folder id")
	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
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

	ids := []string{verifyFolder}
	if verifyFolder == "" {
		ids, err = src.FolderIDs(ctx)
		if err != nil {
			return err
		}
	}

	var errorIssues []verify.Issue
	var warnIssues []verify.Issue
	for _, id := range ids {
		ds, err := src.LoadFolder(ctx, id)
		if err != nil {
			return fmt.Errorf("loading folder %s: %w", id, err)
		}
		report := verify.Run(ds)
		for _, issue := range report.Issues {
			switch issue.Severity {
			case verify.SeverityError:
				errorIssues = append(errorIssues, issue)
			case verify.SeverityWarn:
				warnIssues = append(warnIssues, issue)
			}
		}
	}

	if len(errorIssues) == 0 && len(warnIssues) == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	if len(errorIssues) > 0 {
		fmt.Fprintf(os.Stdout, "Errors (%d):\n", len(errorIssues))
		printIssues(os.Stdout, errorIssues)
	}
	if len(warnIssues) > 0 {
		if len(errorIssues) > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		fmt.Fprintf(os.Stdout, "Warnings (%d):\n", len(warnIssues))
		printIssues(os.Stdout, warnIssues)
	}

	if len(errorIssues) > 0 {
		return fmt.Errorf("verification found errors")
	}
	return nil
}

func printIssues(out *os.File, issues []verify.Issue) {
	for _, issue := range issues {
		location := issue.Table
		if issue.FolderID != "" {
			location = fmt.Sprintf("%s [%s]", issue.Table, issue.FolderID)
		}
		fmt.Fprintf(out, "  - %s: %s (%s)\n", location, issue.Message, issue.Code)
	}
}
