package vehiclemanager

// DefaultTTL is the topic ttl used when a request leaves it at zero.
const DefaultTTL = 60

// Config controls how the registry is populated.
type Config struct {
	// UserID is the platform user whose vehicles UpdateLists pulls in.
	UserID string `yaml:"userId" envconfig:"VEHICLE_MANAGER_USER_ID"`

	// SyncOnStart runs UpdateLists once when the application starts.
	SyncOnStart bool `yaml:"syncOnStart" envconfig:"VEHICLE_MANAGER_SYNC_ON_START"`

	// CsoTopicPrefix marks stored leaves that are offered as topics.
	CsoTopicPrefix string `yaml:"csoTopicPrefix" envconfig:"VEHICLE_MANAGER_CSO_TOPIC_PREFIX"`
}

func (c Config) withDefaults() Config {
	if c.CsoTopicPrefix == "" {
		c.CsoTopicPrefix = "api_cso/"
	}
	return c
}
