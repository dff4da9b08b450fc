package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"reel/internal/app"
	"reel/internal/config"
	"reel/internal/logging"
)

type commandContext struct {
	configFlag *string
	outputFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	appOnce sync.Once
	app     *app.App
	appErr  error
}

func newCommandContext(configFlag, outputFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		outputFlag: outputFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureApp wires the lookup services once per invocation.
func (c *commandContext) ensureApp() (*app.App, error) {
	c.appOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.appErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.appErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.app, c.appErr = app.Open(cfg, logger)
	})
	return c.app, c.appErr
}

// moviesApp is ensureApp for commands that need OMDb.
func (c *commandContext) moviesApp() (*app.App, error) {
	application, err := c.ensureApp()
	if err != nil {
		return nil, err
	}
	if err := application.RequireMovies(); err != nil {
		return nil, err
	}
	return application, nil
}

func (c *commandContext) output() string {
	if c.outputFlag == nil {
		return outputTable
	}
	return strings.ToLower(strings.TrimSpace(*c.outputFlag))
}

func (c *commandContext) validateOutput() error {
	switch c.output() {
	case outputTable, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (expected table, json, or yaml)", c.output())
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
