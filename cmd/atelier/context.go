package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"atelier/internal/auth"
	"atelier/internal/cms"
	"atelier/internal/config"
	"atelier/internal/logging"
	"atelier/internal/notifications"
)

type commandContext struct {
	configFlag   *string
	passcodeFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, passcodeFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		passcodeFlag: passcodeFlag,
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

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) notifier() notifications.Service {
	cfg, err := c.ensureConfig()
	if err != nil {
		return notifications.NewService(nil)
	}
	return notifications.NewService(cfg)
}

// requirePasscode enforces the configured passcode for editing commands.
// Success holds for this invocation only.
func (c *commandContext) requirePasscode() error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	var provided string
	if c.passcodeFlag != nil {
		provided = strings.TrimSpace(*c.passcodeFlag)
	}
	return auth.Check(cfg.Auth.Passcode, provided)
}

// withSession opens an editing session, runs fn, and flushes on the way out.
// The deferred close error wins only when fn itself succeeded.
func (c *commandContext) withSession(cmd *cobra.Command, fn func(*cms.Session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	session, err := cms.Open(cfg, logger, c.notifier())
	if err != nil {
		return err
	}
	runErr := fn(session)
	closeErr := session.Close(cmd.Context())
	if runErr != nil {
		return runErr
	}
	return closeErr
}

// withEditSession is withSession behind the passcode gate.
func (c *commandContext) withEditSession(cmd *cobra.Command, fn func(*cms.Session) error) error {
	if err := c.requirePasscode(); err != nil {
		return err
	}
	return c.withSession(cmd, fn)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
