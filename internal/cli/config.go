package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdslice/internal/configloader"
	"github.com/yaklabco/mdslice/internal/logging"
	"github.com/yaklabco/mdslice/pkg/config"
)

// commandEnv is the resolved environment shared by the subcommands.
type commandEnv struct {
	ctx     context.Context
	logger  *log.Logger
	workDir string
	cfg     *config.Config
	color   string
}

// commandLogger returns a logger writing to the command's error stream.
func commandLogger(cmd *cobra.Command) *log.Logger {
	level := "info"
	if debug, err := cmd.Flags().GetBool("debug"); err == nil && debug {
		level = "debug"
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level)
}

// loadEnv resolves the working directory and configuration for cmd.
// cliCfg carries values from flags that were explicitly set; it may be nil.
func loadEnv(cmd *cobra.Command, cliCfg *config.Config) (*commandEnv, error) {
	logger := commandLogger(cmd)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if configPath != "" {
		logger.Debug("using explicit configuration", logging.FieldConfig, configPath)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return &commandEnv{
		ctx:     ctx,
		logger:  logger,
		workDir: workDir,
		cfg:     loadResult.Config,
		color:   colorMode,
	}, nil
}
