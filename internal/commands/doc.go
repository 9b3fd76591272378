// Package commands provides the command-line interface for the zarc tool.
//
// It implements commands for:
//   - archiving
//   - extraction
//   - listing
//   - secret rotation
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/zarc/internal/config"
)

// bindFlags wires viper to the command's flags and the ZARC_* environment.
func bindFlags(cmd *cobra.Command) error {
	viper.SetEnvPrefix("zarc")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	return nil
}

// parseConfig unmarshals the bound flag and environment values.
func parseConfig() (*config.Config, error) {
	var cfg config.Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// addPipelineFlags registers the member pipeline flags shared by the
// archive and extract commands.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("encrypt", "e", false, "Encrypt members with the default cipher (XChaCha20-Poly1305)")
	cmd.Flags().BoolP("compress", "c", false, "Compress members with the default algorithm (LZ4)")
	cmd.Flags().
		String("encryption-algorithm", "passthrough", "Cipher for members (passthrough, chacha, xchacha, aesgcm)")
	cmd.Flags().
		String("compression-algorithm", "passthrough", "Algorithm for members (passthrough, lz4, gzip, snappy)")
	cmd.Flags().StringP("keypath", "k", "", "Path to a key file holding the secret")
}
