package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gkatanacio/artifact-fetcher/install"
)

var listCmd = &cobra.Command{
	Use:          "list",
	Short:        "List installed versions, newest first.",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		dir := install.Dir{Root: cfg.InstallDir, Binary: cfg.Binary}
		versions, err := dir.Versions()
		if err != nil {
			return err
		}

		for _, v := range versions {
			if path, ok := dir.Lookup(v); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", v, path)
			}
		}

		return nil
	},
}
