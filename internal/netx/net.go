// Package netx contains plain HTTP helpers that bypass the authenticated
// API client, for public object-storage links.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/nutricare/nutricare-client/internal/filex"
)

// DownloadFile fetches rawURL with a plain GET and writes the body into dir,
// named after the last path segment of the URL. It returns the written path.
//
// A nil client means http.DefaultClient. No Authorization header is sent.
func DownloadFile(ctx context.Context, client *http.Client, rawURL, dir string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	target, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(target, filex.SafeName(u.Path, "download"))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}
