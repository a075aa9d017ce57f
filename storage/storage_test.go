package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://files.example.com/exports/a.xlsx", publicURL("https://files.example.com", "exports/a.xlsx"))
	assert.Equal(t, "https://files.example.com/golf/exports/a.xlsx", publicURL("https://files.example.com/golf", "/exports/a.xlsx"))
	assert.Equal(t, "https://files.example.com/golf/exports/a.xlsx", publicURL("https://files.example.com/golf/", "exports/a.xlsx"))
	assert.Empty(t, publicURL("", "a.xlsx"))
	assert.Empty(t, publicURL("https://files.example.com", ""))
}

func TestExportKey(t *testing.T) {
	now := time.Date(2026, 6, 3, 15, 4, 5, 0, time.UTC)
	key := ExportKey(12, "payments-2026-06-03.xlsx", now)
	assert.Equal(t, "exports/tournament-12/20260603T150405-payments-2026-06-03.xlsx", key)
	assert.Equal(t, "20260603T150405-payments-2026-06-03.xlsx", lastSegment(key))
}

func TestNewUploaderRequiresConfig(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	require.ErrorIs(t, err, ErrInvalidConfig)
}
