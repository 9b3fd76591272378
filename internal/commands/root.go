package commands

import (
	"runtime"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command with the flags shared by all
// subcommands.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "zarc [flags] command [flags]",
		Short: "Directory archiver with per-file compression and encryption",
		Long: `zarc archives directories by compressing and encrypting each file as its
own member, so runs parallelize per file and every member records its own
processing in its name.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("verbosity", "v", "normal", "Log verbosity (quiet, normal, verbose, debug)")
	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().Bool("stats", false, "Print processing statistics at the end")

	root.AddCommand(NewArchiveCommand(), NewExtractCommand(), NewListCommand(), NewRotateCommand())

	return root
}
