package wechat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

const tokenTimeout = 10 * time.Second

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Errcode     *int   `json:"errcode"`
	Errmsg      string `json:"errmsg"`
}

// AccessToken exchanges the app credentials for a fresh access token.
// Fetching a new token invalidates any token issued earlier for the
// same app, so a run should fetch once and share the result.
func (c *Client) AccessToken(ctx context.Context) (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, tokenTimeout)
	defer cancel()

	q := make(url.Values)
	q.Set("grant_type", "client_credential")
	q.Set("appid", c.AppID)
	q.Set("secret", c.AppSecret)

	req, err := http.NewRequestWithContext(ctx, "GET", tokenURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	c.Log.Debug().Str("appid", c.AppID).Msg("requesting access token")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error requesting access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		buf, _ := ioutil.ReadAll(resp.Body)
		c.Log.Debug().Str("body", string(buf)).Msg("token endpoint returned an error status")
		return nil, fmt.Errorf("server said: %s", resp.Status)
	}

	var r tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("error decoding token response: %w", err)
	}

	// the endpoint reports failure with a 200 status and an errcode in
	// the body; any response that carries an errcode field is a failure
	if r.Errcode != nil {
		return nil, fmt.Errorf("error fetching access token: %w", &Error{Code: *r.Errcode, Msg: r.Errmsg})
	}
	if r.AccessToken == "" {
		return nil, errors.New("token response did not contain access_token")
	}

	tok := oauth2.Token{AccessToken: r.AccessToken}
	if r.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return &tok, nil
}

// tokenSource adapts AccessToken to the standard oauth2 interface.
// Every Token call performs a network fetch; nothing is cached.
type tokenSource struct {
	ctx context.Context
	c   *Client
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	return ts.c.AccessToken(ts.ctx)
}

// TokenSource returns an oauth2.TokenSource backed by the app
// credentials held by this client
func (c *Client) TokenSource(ctx context.Context) oauth2.TokenSource {
	return tokenSource{ctx: ctx, c: c}
}
