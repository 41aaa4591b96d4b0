package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

type materialResponse struct {
	MediaID string `json:"media_id"`
	URL     string `json:"url"`
	Errcode *int   `json:"errcode"`
	Errmsg  string `json:"errmsg"`
}

// UploadMaterial uploads a local image as permanent material and
// returns the media_id under which the account now stores it. Drafts
// reference their cover image by this id.
func (c *Client) UploadMaterial(ctx context.Context, token, path string) (string, error) {
	q := make(url.Values)
	q.Set("access_token", token)
	q.Set("type", "image")

	body, err := c.postFile(ctx, materialURL+"?"+q.Encode(), path)
	if err != nil {
		return "", err
	}

	var r materialResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("error decoding add_material response: %w", err)
	}

	if r.MediaID == "" {
		if r.Errcode != nil {
			return "", fmt.Errorf("error uploading %s as permanent material: %w", path, &Error{Code: *r.Errcode, Msg: r.Errmsg})
		}
		return "", fmt.Errorf("add_material response did not contain media_id: %s", body)
	}

	return r.MediaID, nil
}
