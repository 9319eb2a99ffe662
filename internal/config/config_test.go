package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, OrderNewestFirst, cfg.SalesListOrder)
	assert.Equal(t, OrderNatural, cfg.ExportOrder)
	assert.Equal(t, "sales_records.csv", cfg.ExportFilename)
	assert.Equal(t, 9*time.Hour, cfg.UTCOffset())
	assert.Equal(t, 30*time.Minute, cfg.ItemCacheTTL())
	assert.Equal(t, "UTC+09:00", cfg.Location().String())
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("UTC_OFFSET_HOURS", "-3.5")
	t.Setenv("EXPORT_ORDER", OrderNewestFirst)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, -(3*time.Hour + 30*time.Minute), cfg.UTCOffset())
	assert.Equal(t, OrderNewestFirst, cfg.ExportOrder)
}

func TestLoad_RejectsUnknownOrder(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SALES_LIST_ORDER", "random")

	_, err := Load()
	assert.ErrorContains(t, err, "SALES_LIST_ORDER")
}

func TestValidate_Offset(t *testing.T) {
	cfg := &Config{SalesListOrder: OrderNatural, ExportOrder: OrderNatural, UTCOffsetHours: 15}
	assert.Error(t, cfg.Validate())
	cfg.UTCOffsetHours = 5.5
	assert.NoError(t, cfg.Validate())
}
