package remoteaccess

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"github.com/Aleph-Alpha/digitaltwin/v1/redis"
)

// TokenKind selects the scope a bearer token is issued for.
type TokenKind string

const (
	UserToken    TokenKind = "user"
	CommandToken TokenKind = "command"
)

// TokenSource hands out bearer tokens for the platform API.
type TokenSource interface {
	// Token returns a cached token unless forceRefresh is set or the cache is empty.
	Token(ctx context.Context, kind TokenKind, forceRefresh bool) (string, error)
}

// TokenProvider fetches client-credentials tokens and shares them through the
// cache, so every replica reuses one token per kind until shortly before it expires.
type TokenProvider struct {
	cfg        Config
	cache      redis.Cache
	httpClient *http.Client
	logger     Logger

	credentials map[TokenKind]*clientcredentials.Config
	group       singleflight.Group
}

var _ TokenSource = (*TokenProvider)(nil)

func NewTokenProvider(cfg Config, cache redis.Cache, logger Logger) *TokenProvider {
	cfg = cfg.withDefaults()

	credentials := func(scope string) *clientcredentials.Config {
		return &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.tokenURL(),
			Scopes:       []string{scope},
			AuthStyle:    oauth2.AuthStyleInParams,
		}
	}

	return &TokenProvider{
		cfg:        cfg,
		cache:      cache,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		credentials: map[TokenKind]*clientcredentials.Config{
			UserToken:    credentials(cfg.UserScope),
			CommandToken: credentials(cfg.CommandScope),
		},
	}
}

func cacheKey(kind TokenKind) string {
	return "token:" + string(kind)
}

func (p *TokenProvider) Token(ctx context.Context, kind TokenKind, forceRefresh bool) (string, error) {
	cc, ok := p.credentials[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTokenKind, kind)
	}

	if !forceRefresh {
		tok, err := p.cache.Get(ctx, cacheKey(kind))
		switch {
		case err == nil && tok != "":
			return tok, nil
		case err != nil && !errors.Is(err, redis.ErrCacheMiss):
			p.logger.Warn("token cache read failed, fetching a new token", err, map[string]interface{}{
				"kind": string(kind),
			})
		}
	}

	v, err, _ := p.group.Do(string(kind), func() (interface{}, error) {
		return p.fetch(ctx, kind, cc)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (p *TokenProvider) fetch(ctx context.Context, kind TokenKind, cc *clientcredentials.Config) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	tok, err := cc.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrTokenFetch, kind, err)
	}

	if !tok.Expiry.IsZero() {
		ttl := time.Until(tok.Expiry) - p.cfg.ExpiryLeeway
		if ttl > 0 {
			if err := p.cache.Set(ctx, cacheKey(kind), tok.AccessToken, ttl); err != nil {
				p.logger.Warn("failed to cache token", err, map[string]interface{}{
					"kind": string(kind),
				})
			}
		}
	}

	p.logger.Info("fetched platform token", nil, map[string]interface{}{
		"kind":   string(kind),
		"expiry": tok.Expiry,
	})
	return tok.AccessToken, nil
}
