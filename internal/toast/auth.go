package toast

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ovenlight/toastctl/internal/models"
)

const (
	loginPath         = "/authentication/v1/authentication/login"
	machineAccessType = "TOAST_MACHINE_CLIENT"
)

// Authenticator exchanges client credentials for bearer tokens and keeps the
// token cache populated. It never retries; a failed exchange surfaces to the
// caller immediately.
type Authenticator struct {
	cfg   *models.Config
	http  *http.Client
	cache *TokenCache
	log   *zap.SugaredLogger
}

func NewAuthenticator(cfg *models.Config, httpClient *http.Client, cache *TokenCache, log *zap.SugaredLogger) *Authenticator {
	return &Authenticator{cfg: cfg, http: httpClient, cache: cache, log: log}
}

type loginRequest struct {
	ClientID       string `json:"clientId"`
	ClientSecret   string `json:"clientSecret"`
	UserAccessType string `json:"userAccessType"`
}

type loginResponse struct {
	Token struct {
		AccessToken string `json:"accessToken"`
		ExpiresIn   int64  `json:"expiresIn"`
	} `json:"token"`
}

// ValidToken returns a cached token when one is still valid, refreshing
// otherwise. It is the sole gate components use before authenticated calls.
func (a *Authenticator) ValidToken(ctx context.Context) (string, error) {
	if token, _, ok := a.cache.Load(); ok {
		return token, nil
	}
	token, _, err := a.Refresh(ctx)
	return token, err
}

// Refresh performs the client-credentials login and stores the new token.
// A cache write failure is logged but does not fail the refresh; the token
// is still usable for the rest of this invocation.
func (a *Authenticator) Refresh(ctx context.Context) (string, time.Time, error) {
	a.log.Debug("refreshing token")

	body, err := json.Marshal(loginRequest{
		ClientID:       a.cfg.ClientID,
		ClientSecret:   a.cfg.ClientSecret,
		UserAccessType: machineAccessType,
	})
	if err != nil {
		return "", time.Time{}, &AuthError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL()+loginPath, bytes.NewReader(body))
	if err != nil {
		return "", time.Time{}, &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", time.Time{}, &AuthError{Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, &AuthError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var login loginResponse
	if err := json.Unmarshal(respBody, &login); err != nil {
		return "", time.Time{}, &AuthError{Err: err}
	}
	if login.Token.AccessToken == "" {
		return "", time.Time{}, &AuthError{Status: resp.StatusCode, Body: string(respBody), Err: ErrNoAccessToken}
	}

	expiry := time.Now().Add(time.Duration(login.Token.ExpiresIn) * time.Second)
	if err := a.cache.Save(login.Token.AccessToken, expiry); err != nil {
		a.log.Warnw("could not cache token", "err", err)
	}

	a.log.Debug("token refreshed")
	return login.Token.AccessToken, expiry, nil
}
