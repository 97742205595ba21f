package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	// Minimal file: everything else falls back to defaults
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "salonbook_bookings"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "10:00", cfg.Booking.OpenTime)
	assert.Equal(t, "17:30", cfg.Booking.CloseTime)
	assert.Equal(t, 30, cfg.Booking.SlotDurationMinutes)
	assert.Equal(t, 2, cfg.Booking.MaxActiveBookings)
	assert.Equal(t, "info", cfg.Logs.Level)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5433
user = "svc"
password = "secret"
dbname = "bookings"
sslmode = "require"

[booking]
open_time = "09:00"
close_time = "18:00"
slot_duration_minutes = 60
max_active_bookings = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "09:00", cfg.Booking.OpenTime)
	assert.Equal(t, 3, cfg.Booking.MaxActiveBookings)
	assert.Equal(t,
		"host=db.internal port=5433 user=svc password=secret dbname=bookings sslmode=require",
		cfg.Database.DSN())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing database", `[server]` + "\n" + `http_port = 8080`},
		{"bad open time", `
[database]
host = "localhost"
dbname = "x"

[booking]
open_time = "25:00"
`},
		{"open after close", `
[database]
host = "localhost"
dbname = "x"

[booking]
open_time = "18:00"
close_time = "10:00"
`},
		{"zero slot duration", `
[database]
host = "localhost"
dbname = "x"

[booking]
slot_duration_minutes = 0
`},
		{"zero booking limit", `
[database]
host = "localhost"
dbname = "x"

[booking]
max_active_bookings = 0
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
