package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxMediaBytes caps inbound media downloads. WhatsApp images top out well
// below this.
const maxMediaBytes = 16 << 20

// MediaDownloader fetches inbound media from Twilio's CDN. Media URLs are
// protected by the account's basic-auth credentials.
type MediaDownloader struct {
	accountSID string
	authToken  string
	httpClient *http.Client
}

// NewMediaDownloader creates a downloader using the Twilio account credentials.
func NewMediaDownloader(accountSID, authToken string) *MediaDownloader {
	return &MediaDownloader{
		accountSID: accountSID,
		authToken:  authToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Download fetches the media at url and returns its bytes.
func (d *MediaDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("messaging: media url required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: build media request: %w", err)
	}
	if d.accountSID != "" {
		req.SetBasicAuth(d.accountSID, d.authToken)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("messaging: fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("messaging: media fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaBytes))
	if err != nil {
		return nil, fmt.Errorf("messaging: read media body: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("messaging: media body was empty")
	}
	return data, nil
}
