package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "acextract",
		Short: "Extract images from compiled asset catalogs",
		Long: `acextract extracts the image renditions of an asset catalog and writes
them out as PNG files, optionally rebuilding the editable .imageset
directories with their Contents.json descriptors.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

// flagOrEnv prefers an explicitly set flag, then the environment (including
// values loaded from .env), then the flag default.
func flagOrEnv(cmd *cobra.Command, name, key, value string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return value
}
