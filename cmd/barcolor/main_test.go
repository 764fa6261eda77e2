package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 00:00 UTC 起每小时一根，time,open,close,low,high,volume
const hourly = `1704067200,10,11,9,12,100
1704070800,11,12,10,13,100
1704074400,12,13,11,14,100
1704078000,13,12,11,14,100
1704081600,12,14,11,15,100
1704085200,14,15,13,16,100
`

func runReplay(t *testing.T, args ...string) (string, error) {
	t.Helper()

	file := filepath.Join(t.TempDir(), "btc-1h.csv")
	require.NoError(t, os.WriteFile(file, []byte(hourly), 0o600))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	base := []string{"barcolor", "replay", "--file", file, "--pair", "BTCUSDT", "--timeframe", "1h", "--rows", "10"}
	err := app.Run(append(base, args...))
	return out.String(), err
}

func TestReplay(t *testing.T) {
	for name, tc := range map[string]struct {
		args    []string
		painted string
	}{
		"always visible":   {args: []string{"--period", "2"}, painted: "5 PAINTED"},
		"hidden at 3 bars": {args: []string{"--period", "2", "--hide-at", "3"}, painted: "4 PAINTED"},
		"shown again":      {args: []string{"--period", "2", "--hide-at", "3", "--show-at", "5"}, painted: "5 PAINTED"},
		"cleared":          {args: []string{"--period", "2", "--clear"}, painted: "6 PAINTED"},
	} {
		t.Run(name, func(t *testing.T) {
			out, err := runReplay(t, tc.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tc.painted)
			assert.Contains(t, out, "2024-01-01T05:00:00Z")
			assert.Contains(t, out, "CLOSE vs MA (%)")
		})
	}
}

func TestReplay_Config(t *testing.T) {
	config := filepath.Join(t.TempDir(), "barcolor.yml")
	require.NoError(t, os.WriteFile(config, []byte("period: 3\nabove_color: gold\n"), 0o600))

	out, err := runReplay(t, "--config", config)
	require.NoError(t, err)
	assert.Contains(t, out, "gold")
	assert.Contains(t, out, "4 PAINTED")
}

func TestReplay_Errors(t *testing.T) {
	_, err := runReplay(t, "--period", "0")
	assert.ErrorContains(t, err, "period")

	_, err = runReplay(t, "--timeframe", "3h", "--source-timeframe", "1h")
	assert.ErrorContains(t, err, "invalid timeframe")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err = app.Run([]string{"barcolor", "replay", "--pair", "BTCUSDT", "--file", filepath.Join(t.TempDir(), "missing.csv")})
	assert.Error(t, err)
}
