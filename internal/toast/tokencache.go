package toast

import (
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"
)

// expiryBuffer is subtracted from the cached expiry so a token is never
// handed out moments before it dies mid-request.
const expiryBuffer = 5 * time.Minute

// TokenCache persists a bearer token and its absolute expiry to a JSON file.
// The file is the only state shared between invocations; concurrent writers
// race last-writer-wins, which is acceptable for a single-operator tool.
type TokenCache struct {
	path string
	log  *zap.SugaredLogger
}

type cachedToken struct {
	AccessToken string `json:"accessToken"`
	ExpiryTime  string `json:"expiryTime"`
}

func NewTokenCache(path string, log *zap.SugaredLogger) *TokenCache {
	return &TokenCache{path: path, log: log}
}

// Load returns the cached token and expiry if the token is still valid past
// the buffer. A missing or corrupt cache file is a miss, never an error.
func (c *TokenCache) Load() (string, time.Time, bool) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return "", time.Time{}, false
	}

	var data cachedToken
	if err := json.Unmarshal(raw, &data); err != nil {
		c.log.Warnw("ignoring corrupt token cache", "path", c.path, "err", err)
		return "", time.Time{}, false
	}

	expiry, err := time.Parse(time.RFC3339, data.ExpiryTime)
	if err != nil || data.AccessToken == "" {
		c.log.Warnw("ignoring malformed token cache", "path", c.path)
		return "", time.Time{}, false
	}

	if time.Now().Add(expiryBuffer).After(expiry) {
		c.log.Debug("cached token expired")
		return "", time.Time{}, false
	}

	c.log.Debug("using cached token")
	return data.AccessToken, expiry, true
}

// Save overwrites the cache file with the token and its absolute expiry.
func (c *TokenCache) Save(token string, expiry time.Time) error {
	data, err := json.MarshalIndent(cachedToken{
		AccessToken: token,
		ExpiryTime:  expiry.Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return &CacheError{Path: c.path, Err: err}
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return &CacheError{Path: c.path, Err: err}
	}
	c.log.Debug("token cached")
	return nil
}

// Clear removes the cache file. A missing file is not an error.
func (c *TokenCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return &CacheError{Path: c.path, Err: err}
	}
	return nil
}
