package logger

// Log levels accepted in Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config selects the verbosity and static fields of the service logger.
type Config struct {
	// Level is one of debug, info, warning or error. Unknown values mean info.
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`

	// ServiceName is attached to every entry as "service".
	ServiceName string `yaml:"serviceName" envconfig:"SERVICE_NAME"`

	// EnableTracing adds trace_id and span_id to entries logged with a context
	// that carries a recording span.
	EnableTracing bool `yaml:"enableTracing" envconfig:"LOG_ENABLE_TRACING"`

	// Development switches to the console encoder with colored levels.
	Development bool `yaml:"development" envconfig:"LOG_DEVELOPMENT"`
}
