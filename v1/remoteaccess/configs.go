package remoteaccess

import (
	"fmt"
	"time"
)

const (
	DefaultScheme            = "https"
	DefaultCommandName       = "DigitalTwinCommandHandler"
	DefaultCommandAPIVersion = "2021-09-01"
	DefaultUserAPIVersion    = "2019-09-01"
	DefaultVehicleAPIVersion = "2020-07-01"
	DefaultTimeout           = 30 * time.Second
	DefaultExpiryLeeway      = time.Minute
)

// Config holds the endpoints and credentials of the vehicle platform API.
type Config struct {
	// Scheme is only overridden in tests.
	Scheme string `yaml:"scheme" envconfig:"REMOTE_SCHEME"`

	// Domain hosts the commands, vehicles and users APIs.
	Domain string `yaml:"domain" envconfig:"REMOTE_DOMAIN"`

	// TokenDomain hosts the identity provider's token endpoint.
	TokenDomain  string `yaml:"tokenDomain" envconfig:"REMOTE_TOKEN_DOMAIN"`
	TenantID     string `yaml:"tenantId" envconfig:"REMOTE_TENANT_ID"`
	ClientID     string `yaml:"clientId" envconfig:"REMOTE_CLIENT_ID"`
	ClientSecret string `yaml:"clientSecret" envconfig:"REMOTE_CLIENT_SECRET"`
	UserScope    string `yaml:"userScope" envconfig:"REMOTE_USER_SCOPE"`
	CommandScope string `yaml:"commandScope" envconfig:"REMOTE_COMMAND_SCOPE"`

	// SubscriptionKey is sent as Ocp-Apim-Subscription-Key on every call.
	SubscriptionKey string `yaml:"subscriptionKey" envconfig:"REMOTE_SUBSCRIPTION_KEY"`

	CommandName       string `yaml:"commandName" envconfig:"REMOTE_COMMAND_NAME"`
	CommandAPIVersion string `yaml:"commandApiVersion" envconfig:"REMOTE_COMMAND_API_VERSION"`
	UserAPIVersion    string `yaml:"userApiVersion" envconfig:"REMOTE_USER_API_VERSION"`
	VehicleAPIVersion string `yaml:"vehicleApiVersion" envconfig:"REMOTE_VEHICLE_API_VERSION"`

	Timeout time.Duration `yaml:"timeout" envconfig:"REMOTE_TIMEOUT"`

	// ExpiryLeeway is subtracted from a token's lifetime when it is cached.
	ExpiryLeeway time.Duration `yaml:"expiryLeeway" envconfig:"REMOTE_EXPIRY_LEEWAY"`
}

func (c Config) withDefaults() Config {
	if c.Scheme == "" {
		c.Scheme = DefaultScheme
	}
	if c.CommandName == "" {
		c.CommandName = DefaultCommandName
	}
	if c.CommandAPIVersion == "" {
		c.CommandAPIVersion = DefaultCommandAPIVersion
	}
	if c.UserAPIVersion == "" {
		c.UserAPIVersion = DefaultUserAPIVersion
	}
	if c.VehicleAPIVersion == "" {
		c.VehicleAPIVersion = DefaultVehicleAPIVersion
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ExpiryLeeway == 0 {
		c.ExpiryLeeway = DefaultExpiryLeeway
	}
	return c
}

func (c Config) tokenURL() string {
	return fmt.Sprintf("%s://%s/%s/oauth2/v2.0/token", c.Scheme, c.TokenDomain, c.TenantID)
}

func (c Config) baseURL() string {
	return c.Scheme + "://" + c.Domain
}
