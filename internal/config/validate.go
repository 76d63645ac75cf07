package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.APIBind != "" {
		if _, _, err := net.SplitHostPort(c.Paths.APIBind); err != nil {
			return fmt.Errorf("paths.api_bind must be host:port: %w", err)
		}
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.DefaultActor == "" {
		return errors.New("workflow.default_actor must be set")
	}
	if c.Workflow.MaxPreSuppliedStages < 0 {
		return errors.New("workflow.max_pre_supplied_stages must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
