package tracer

// Config controls span export.
type Config struct {
	ServiceName string `yaml:"serviceName" envconfig:"TRACER_SERVICE_NAME"`
	AppEnv      string `yaml:"appEnv" envconfig:"APP_ENV"`

	// EnableExport sends spans to the OTLP/HTTP endpoint configured through the
	// standard OTEL_EXPORTER_OTLP_* environment variables. Without it spans are
	// still created and propagated but never leave the process.
	EnableExport bool `yaml:"enableExport" envconfig:"TRACER_ENABLE_EXPORT"`
}
