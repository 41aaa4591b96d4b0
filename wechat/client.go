package wechat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Endpoints of the Official Account content-publishing API. The paths
// are fixed; all variation is in query parameters.
const (
	tokenURL     = "https://api.weixin.qq.com/cgi-bin/token"
	materialURL  = "https://api.weixin.qq.com/cgi-bin/material/add_material"
	uploadImgURL = "https://api.weixin.qq.com/cgi-bin/media/uploadimg"
	draftURL     = "https://api.weixin.qq.com/cgi-bin/draft/add"
)

// Client provides access to the WeChat Official Account content API
type Client struct {
	AppID     string
	AppSecret string
	HTTP      *http.Client
	Log       zerolog.Logger
}

// New creates a new client
func New(appID, appSecret string) *Client {
	return &Client{
		AppID:     appID,
		AppSecret: appSecret,
		HTTP:      http.DefaultClient,
		Log:       zerolog.Nop(),
	}
}

// postFile streams a local file to endpoint as a multipart form under
// the field name "media", which is the name every upload endpoint of
// this API expects. It returns the raw response body; the endpoints
// report their failures inside a 200 response, so callers decide
// success by inspecting the decoded body rather than the HTTP status.
func (c *Client) postFile(ctx context.Context, endpoint, path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer file.Close()

	var b bytes.Buffer
	writer := multipart.NewWriter(&b)
	part, err := writer.CreateFormFile("media", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("error creating multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("error reading %s into multipart form: %w", path, err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error uploading %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading upload response: %w", err)
	}

	c.Log.Debug().Str("file", path).Str("body", string(body)).Msg("upload endpoint responded")

	return body, nil
}
