package config

const (
	defaultDataDir              = "~/.local/share/orderflow/data"
	defaultLogDir               = "~/.local/share/orderflow/logs"
	defaultAPIBind              = "127.0.0.1:7460"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultWorkflowActor        = "unattributed"
	defaultMaxPreSuppliedStages = 4
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Workflow: Workflow{
			DefaultActor:         defaultWorkflowActor,
			MaxPreSuppliedStages: defaultMaxPreSuppliedStages,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
