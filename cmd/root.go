package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"projinspect/pkg/bundle"
	"projinspect/pkg/config"
	"projinspect/pkg/logging"
	"projinspect/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projinspect",
		Short: "Projinspect bundles a project's source files into plain-text parts",
		Long: `Projinspect walks a project folder, keeps the files relevant to a technology
stack, and writes a directory tree plus the concatenated file contents into one
or more .txt files. Output is split into numbered parts when it grows past
--max-size; a file is never split across parts.`,
		Example: `  projinspect --path ./my-java-project --stack java --output out
  projinspect --path ./my-py-project --stack python --include yaml,txt
  projinspect --path ./my-js-project --include package.json,src/ --max-size 2MiB
  projinspect --path ./my-cpp-code --include hpp --exclude .git,build`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInspect,
	}
	config.InitFlags(cmd)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newStacksCmd())
	return cmd
}

func runInspect(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := config.Load(cmd, cwd)
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.Debug, "projinspect", version.Get().Version); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger := logging.Logger

	args, err := cfg.Arguments()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := bundle.Run(ctx, args, logger)
	if err != nil {
		logger.Debug("Inspection failed", zap.Error(err))
		return err
	}

	return printSummary(cmd.OutOrStdout(), result, cfg.Debug)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.ExecuteContext(context.Background())
}
