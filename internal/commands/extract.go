package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/zarc/internal/logging"
	"github.com/idelchi/zarc/internal/logic"
)

// NewExtractCommand creates the cobra command for extracting archives.
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "extract [flags] archive destination",
		Aliases: []string{"x"},
		Short:   "Extract an archive",
		Long: `Extract an archive into the destination directory. Member types are read
from the member names when no algorithm flags are given, so archives
extract without repeating the flags they were created with.`,
		Args: cobra.ExactArgs(2),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := parseConfig()
			if err != nil {
				return err
			}

			cfg.Input = args[0]
			cfg.Destination = args[1]
			cfg.Extract = true

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(cfg.Verbosity)
			if err != nil {
				return err
			}

			defer func() { _ = logger.Sync() }()

			return logic.Extract(cmd.Context(), cfg, logger)
		},
	}

	addPipelineFlags(cmd)

	return cmd
}
