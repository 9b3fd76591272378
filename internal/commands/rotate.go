package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/zarc/internal/logic"
)

// NewRotateCommand creates the cobra command for re-encrypting an archive
// under a new secret.
func NewRotateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rotate [flags] archive",
		Aliases: []string{"rot"},
		Short:   "Re-encrypt an archive under a new secret",
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

			return logic.Rotate(cfg)
		},
	}
}
