package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int64
		want string
	}{
		{name: "empty snapshot", size: 0, want: "0 B"},
		{name: "seed snapshot", size: 900, want: "900 B"},
		{name: "one kilobyte", size: 1024, want: "1.0 KB"},
		{name: "grown ledger", size: 2560, want: "2.5 KB"},
		{name: "large import", size: 3 * 1024 * 1024, want: "3.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatBytes(tt.size))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "fast pull", d: 42 * time.Millisecond, want: "42ms"},
		{name: "slow pull", d: 2500 * time.Millisecond, want: "2.5s"},
		{name: "minutes", d: 65 * time.Second, want: "1m5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}
