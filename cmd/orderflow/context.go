package main

import (
	"strings"
	"sync"

	"orderflow/internal/api"
	"orderflow/internal/catalog"
	"orderflow/internal/config"
	"orderflow/internal/logging"
	"orderflow/internal/orders"
	"orderflow/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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

// withService opens the store for the duration of one command and hands
// the assembled service to fn.
func (c *commandContext) withService(fn func(*config.Config, *orders.Store, *api.OrderService) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := orders.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	manager := workflow.NewManager(store, catalog.Default(), logging.NewNop(),
		workflow.WithDefaultActor(cfg.Workflow.DefaultActor),
		workflow.WithPreSuppliedCap(cfg.Workflow.MaxPreSuppliedStages))
	return fn(cfg, store, api.NewOrderService(manager))
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
