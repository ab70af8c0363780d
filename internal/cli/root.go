package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/buildinfo"
)

// Execute runs the agsi CLI and returns an error if any command fails.
// This is the main entry point for the CLI application. The given context
// bounds every command; cancelling it stops long-running commands such as
// agent and serve.
//
// The logger and the loaded configuration are attached to the context and
// accessible to all commands via loggerFromContext and configFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "agsi",
		Short:        "agsi works with ground model interchange documents",
		Long:         `agsi creates, validates, inspects and converts vendor-neutral ground model interchange documents used to exchange geological and geotechnical models between engineering tools.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/agsi/config.toml)")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newCreateCmd())
	root.AddCommand(newEditCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newFormCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newAgentCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
