package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/zarc/internal/logging"
	"github.com/idelchi/zarc/internal/logic"
)

// NewArchiveCommand creates the cobra command for creating archives.
func NewArchiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "archive [flags] directory",
		Aliases: []string{"a"},
		Short:   "Archive a directory",
		Long: `Archive every file under the given directory, compressing and encrypting
each one separately before bundling them into a single archive file.`,
		Args: cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := parseConfig()
			if err != nil {
				return err
			}

			cfg.Input = args[0]

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(cfg.Verbosity)
			if err != nil {
				return err
			}

			defer func() { _ = logger.Sync() }()

			return logic.Archive(cmd.Context(), cfg, logger)
		},
	}

	addPipelineFlags(cmd)

	cmd.Flags().StringP("output", "o", "", "Path of the archive to create, defaults to <directory> plus type tags")
	cmd.Flags().String("compression-level", "fastest", "Compression level (fastest, default, best or 0-9)")

	return cmd
}
