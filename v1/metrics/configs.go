package metrics

// Config controls the Prometheus endpoint.
type Config struct {
	// Address the metrics server listens on, e.g. ":9090".
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// ServiceName is added to every series as the "service" label.
	ServiceName string `yaml:"serviceName" envconfig:"METRICS_SERVICE_NAME"`

	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE"`

	// EnableDefaultCollectors registers the Go runtime, process and build info collectors.
	EnableDefaultCollectors bool `yaml:"enableDefaultCollectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`
}

const (
	DefaultAddress   = ":9090"
	DefaultNamespace = "digitaltwin"
)
