package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/bleconsole/internal/errors"
)

func TestParseSpacing(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		want    time.Duration
		wantErr bool
	}{
		{name: "empty string returns zero", flag: "", want: 0},
		{name: "valid milliseconds", flag: "250ms", want: 250 * time.Millisecond},
		{name: "valid seconds", flag: "2s", want: 2 * time.Second},
		{name: "valid complex duration", flag: "1m30s", want: 90 * time.Second},
		{name: "minimum is accepted", flag: "10ms", want: MinSpacing},
		{name: "below minimum", flag: "1ms", wantErr: true},
		{name: "negative duration", flag: "-5s", wantErr: true},
		{name: "invalid format returns error", flag: "5", wantErr: true},
		{name: "invalid string returns error", flag: "fast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpacing(tt.flag)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount("cards", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, bad := range []int{0, -1} {
		_, err := ParseCount("cards", bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--cards must be positive")
	}
}

func TestRunFlagDefaults(t *testing.T) {
	tests := []struct {
		flag string
		def  string
	}{
		{"per-cycle", "8"},
		{"cycles", "0"},
		{"headless", "false"},
		{"clock", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := runCmd.Flags().Lookup(tt.flag)
			require.NotNil(t, f)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
}
