package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "osurebuild",
		Short: "Reconstruct playable osu! beatmap folders from a normalized dataset",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(reconstructCmd())
	root.AddCommand(foldersCmd())
	root.AddCommand(verifyCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
