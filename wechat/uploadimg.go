package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

type uploadImgResponse struct {
	URL     string `json:"url"`
	Errcode *int   `json:"errcode"`
	Errmsg  string `json:"errmsg"`
}

// UploadContentImage uploads a local image for use inside article
// bodies and returns the public URL it is served under. Images
// uploaded this way do not count against the account's permanent
// material quota.
func (c *Client) UploadContentImage(ctx context.Context, token, path string) (string, error) {
	q := make(url.Values)
	q.Set("access_token", token)

	body, err := c.postFile(ctx, uploadImgURL+"?"+q.Encode(), path)
	if err != nil {
		return "", err
	}

	var r uploadImgResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("error decoding uploadimg response: %w", err)
	}

	if r.URL == "" {
		if r.Errcode != nil {
			return "", fmt.Errorf("error uploading %s as content image: %w", path, &Error{Code: *r.Errcode, Msg: r.Errmsg})
		}
		return "", fmt.Errorf("uploadimg response did not contain url: %s", body)
	}

	return r.URL, nil
}
