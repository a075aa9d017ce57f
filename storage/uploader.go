// Package storage archives generated export workbooks in S3-compatible
// object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// ExportKey places a workbook under exports/<tournament>/<timestamp>-<filename>
// so repeated downloads on one day do not overwrite each other.
func ExportKey(tournamentID int, filename string, now time.Time) string {
	stamp := now.UTC().Format("20060102T150405")
	return path.Join("exports", fmt.Sprintf("tournament-%d", tournamentID), stamp+"-"+filename)
}
