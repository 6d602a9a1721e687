package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// thursday is 2023-06-01 10:00 EDT
var thursday = time.Unix(1685628000, 0)

func run(t *testing.T, args ...string) (map[string]interface{}, []byte, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, func() time.Time { return thursday })
	cmd.SetArgs(args)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	var result map[string]interface{}
	if out.Len() > 0 && out.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	}
	return result, out.Bytes(), err
}

func TestOpenCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{name: "defaults to now", args: []string{"open"}, expected: true},
		{name: "saturday", args: []string{"open", "1685800800"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result["open"])
		})
	}
}

func TestOpenCmd_Errors(t *testing.T) {
	_, _, err := run(t, "open", "noon")
	assert.Error(t, err)

	_, _, err = run(t, "open", "9223372036854775807")
	assert.Error(t, err)
}

func TestStatusCmd(t *testing.T) {
	result, _, err := run(t, "status", "1688482800") // 2023-07-04
	require.NoError(t, err)
	assert.Equal(t, "holiday", result["reason"])
	assert.Equal(t, "Independence Day", result["holiday"])
	assert.Equal(t, "2023-07-05", result["opens_date"])
}

func TestHolidaysCmd(t *testing.T) {
	_, raw, err := run(t, "holidays", "2024")
	require.NoError(t, err)

	var holidays []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &holidays))
	assert.Len(t, holidays, 10)

	_, _, err = run(t, "holidays", "twenty")
	assert.Error(t, err)
}

func TestAuthorizeCmd(t *testing.T) {
	dir := t.TempDir()
	allowlist := filepath.Join(dir, "assets.yaml")
	require.NoError(t, os.WriteFile(allowlist, []byte("assets: [MSFT]\n"), 0o600))

	tests := []struct {
		name      string
		args      []string
		allowed   bool
		expectErr bool
	}{
		{name: "open market", args: []string{"authorize", "--asset", "AAPL"}, allowed: true},
		{name: "weekend", args: []string{"authorize", "--asset", "AAPL", "--ts", "1685800800"}, expectErr: true},
		{name: "allow flag", args: []string{"authorize", "--asset", "AAPL", "--allow", "AAPL,SPY"}, allowed: true},
		{name: "not on allow-list file", args: []string{"authorize", "--asset", "AAPL", "--allowlist-file", allowlist}, expectErr: true},
		{name: "on allow-list file", args: []string{"authorize", "--asset", "msft", "--allowlist-file", allowlist}, allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := run(t, tt.args...)
			if tt.expectErr {
				assert.ErrorIs(t, err, errDenied)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, result)
			assert.Equal(t, tt.allowed, result["allowed"])
		})
	}
}

func TestAuthorizeCmd_RequiresAsset(t *testing.T) {
	_, _, err := run(t, "authorize")
	assert.Error(t, err)
}
