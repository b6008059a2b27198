// Package assets downloads and stores article images keyed by asset id.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonesrussell/newsharvest/internal/fetch"
	"github.com/jonesrussell/newsharvest/internal/logger"
)

const fileMode = 0o644

// Downloader fetches images into a shared directory. Language variants
// of the same article reference the same asset id, so an existing file
// is reused without a network call.
type Downloader struct {
	client *fetch.Client
	dir    string
	logger logger.Interface
}

// NewDownloader creates a downloader writing into dir.
func NewDownloader(client *fetch.Client, dir string, log logger.Interface) *Downloader {
	return &Downloader{
		client: client,
		dir:    dir,
		logger: log.WithComponent("assets"),
	}
}

// FileName returns the stored file name for an asset id.
func FileName(assetID string) string {
	return assetID + ".jpg"
}

// Ensure makes sure the image for assetID exists locally, downloading it
// from sourceURL when absent. Fetch failures surface as terminal
// *fetch.Error; a local write failure is returned as-is and is the
// caller's to retry.
func (d *Downloader) Ensure(ctx context.Context, assetID, sourceURL string) error {
	path := filepath.Join(d.dir, FileName(assetID))

	if _, err := os.Stat(path); err == nil {
		d.logger.Debug("Image already downloaded", "asset_id", assetID)
		return nil
	}

	body, err := d.client.Get(ctx, sourceURL, nil)
	if err != nil {
		return fmt.Errorf("download image %s: %w", sourceURL, err)
	}

	if writeErr := os.WriteFile(path, body, fileMode); writeErr != nil {
		d.logger.Error("Failed to save image",
			"asset_id", assetID,
			"path", path,
			"error", writeErr)
		return fmt.Errorf("save image %s: %w", path, writeErr)
	}

	d.logger.Debug("Image downloaded", "asset_id", assetID, "bytes", len(body))
	return nil
}
