package remoteaccess

import "go.uber.org/fx"

// FXModule provides the token provider and the API client.
var FXModule = fx.Module("remoteaccess",
	fx.Provide(
		NewTokenProvider,
		func(p *TokenProvider) TokenSource { return p },
		NewClient,
		func(c *Client) API { return c },
	),
)
