package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validConfig = `
[server]
http_port = 8082
read_timeout = 10
write_timeout = 10
idle_timeout = 60
shutdown_timeout = 15

[database]
host = "localhost"
port = 5432
user = "lounge"
password = "lounge"
dbname = "lounge"
sslmode = "disable"
max_open_conns = 10
max_idle_conns = 5
conn_max_lifetime = 300

[logs]
file = "logs/app.log"
level = "info"

[metrics]
enabled = true
path = "/metrics"
service_name = "lounge-service"

[schedule]
timezone = "Asia/Seoul"
slot_duration_minutes = 30

[[schedule.windows]]
weekdays = ["mon", "tue", "wed", "thu"]
start = "21:30"
end = "23:30"

[[schedule.windows]]
weekdays = ["sun"]
start = "22:00"
end = "23:30"

[sheets]
enabled = true
spreadsheet_id = "spreadsheet-id"
worksheet_title = "Sheet1"

[sheets.lounge_columns]
1 = "B"
2 = "G"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8082, cfg.Server.HTTPPort)
	assert.Equal(t, "host=localhost port=5432 user=lounge password=lounge dbname=lounge sslmode=disable",
		cfg.Database.DSN())
	assert.Equal(t, "Asia/Seoul", cfg.Schedule.Timezone)
	assert.Len(t, cfg.Schedule.Windows, 2)
	assert.Equal(t, map[string]string{"1": "B", "2": "G"}, cfg.Sheets.LoungeColumns)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[database]
host = "localhost"
`))
	require.NoError(t, err)

	assert.Equal(t, 8082, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "lounge-service", cfg.Metrics.ServiceName)
	assert.Equal(t, "Asia/Seoul", cfg.Schedule.Timezone)
	assert.Equal(t, 30, cfg.Schedule.SlotDurationMinutes)
	assert.Equal(t, "A1", cfg.Sheets.TitleCell)
	assert.Equal(t, "A", cfg.Sheets.TimeColumn)
	assert.Equal(t, 3, cfg.Sheets.FirstRow)
	assert.Equal(t, 4, cfg.Sheets.MaxRows)
	assert.Equal(t, 2, cfg.Sheets.Workers)
	assert.Equal(t, 64, cfg.Sheets.QueueSize)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "bad timezone",
			body: `
[schedule]
timezone = "Mars/Olympus"
`,
		},
		{
			name: "slot duration out of range",
			body: `
[schedule]
slot_duration_minutes = 500
`,
		},
		{
			name: "window without weekdays",
			body: `
[[schedule.windows]]
start = "21:30"
end = "23:30"
`,
		},
		{
			name: "bad window time",
			body: `
[[schedule.windows]]
weekdays = ["mon"]
start = "9pm"
end = "23:30"
`,
		},
		{
			name: "sheets enabled without spreadsheet id",
			body: `
[sheets]
enabled = true

[sheets.lounge_columns]
1 = "B"
`,
		},
		{
			name: "sheets enabled without lounge columns",
			body: `
[sheets]
enabled = true
spreadsheet_id = "spreadsheet-id"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
