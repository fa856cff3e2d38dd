package cmd

import (
	"crypto/sha1"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gkatanacio/artifact-fetcher/download"
)

var verifyCmd = &cobra.Command{
	Use:          "verify FILE SHA1",
	Short:        "Check a downloaded file against its SHA-1 checksum.",
	SilenceUsage: true,
	Args:         cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := download.VerifyFile(args[0], args[1], sha1.New); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Checksum OK:", args[0])

		return nil
	},
}
