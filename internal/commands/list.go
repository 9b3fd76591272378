package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/zarc/internal/logic"
)

// NewListCommand creates the cobra command for listing archive contents.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list [flags] archive",
		Aliases: []string{"ls"},
		Short:   "List the contents of an archive",
		Args:    cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := parseConfig()
			if err != nil {
				return err
			}

			cfg.Input = args[0]

			if err := cfg.Validate(); err != nil {
				return err
			}

			return logic.List(cfg)
		},
	}
}
