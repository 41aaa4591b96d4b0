package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"
)

const draftTimeout = 30 * time.Second

// the errcode returned when the access token has expired or was
// superseded by a newer one
const errcodeInvalidCredential = 40001

// Article is a single article inside a draft creation request
type Article struct {
	Title              string `json:"title"`
	Author             string `json:"author"`
	Digest             string `json:"digest"`
	Content            string `json:"content"`
	ContentSourceURL   string `json:"content_source_url"`
	ThumbMediaID       string `json:"thumb_media_id"`
	ShowCoverPic       int    `json:"show_cover_pic"`
	NeedOpenComment    int    `json:"need_open_comment"`
	OnlyFansCanComment int    `json:"only_fans_can_comment"`
}

type draftRequest struct {
	Articles []Article `json:"articles"`
}

// DraftResult is the decoded response from a draft creation call
type DraftResult struct {
	MediaID string          `json:"media_id"`
	Item    json.RawMessage `json:"item,omitempty"`
	Errcode *int            `json:"errcode,omitempty"`
	Errmsg  string          `json:"errmsg,omitempty"`
}

// Accepted reports whether the API accepted the draft. A response with
// a media_id for the new draft is an acceptance no matter what else it
// carries. Without a media_id, an errcode of zero still counts as
// acceptance, but only when the field is actually present in the
// response body.
func (r *DraftResult) Accepted() bool {
	if r.MediaID != "" {
		return true
	}
	return r.Errcode != nil && *r.Errcode == 0
}

// TokenExpired reports whether the API rejected the draft because the
// access token is no longer valid. A response carrying a media_id was
// accepted, so a stray errcode beside one does not count.
func (r *DraftResult) TokenExpired() bool {
	return r.MediaID == "" && r.Errcode != nil && *r.Errcode == errcodeInvalidCredential
}

// CreateDraft submits articles as a new draft in the account's draft
// box. The raw response body is logged in full because rejections are
// diagnosed from it. Like the upload endpoints, this endpoint reports
// failure inside the response body, so the result must be checked with
// Accepted even when the returned error is nil.
func (c *Client) CreateDraft(ctx context.Context, token string, articles []Article) (*DraftResult, error) {
	ctx, cancel := context.WithTimeout(ctx, draftTimeout)
	defer cancel()

	// article bodies are HTML; keep the markup unescaped in the payload
	var payload bytes.Buffer
	enc := json.NewEncoder(&payload)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(draftRequest{Articles: articles}); err != nil {
		return nil, fmt.Errorf("error marshalling draft request: %w", err)
	}

	q := make(url.Values)
	q.Set("access_token", token)

	req, err := http.NewRequestWithContext(ctx, "POST", draftURL+"?"+q.Encode(), &payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error posting draft: %w", err)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading draft response: %w", err)
	}

	c.Log.Info().Str("body", string(body)).Msg("draft endpoint responded")

	var r DraftResult
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("error decoding draft response: %w", err)
	}

	return &r, nil
}
