package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTerminal_StatusOK(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, TerminalOptions{NoColor: true})

	term.Status("Finding latest version ...")
	term.OK("5.2.0")
	term.Status("Validating security checksum")
	term.OK("")

	assert.Equal(t, "Finding latest version ... 5.2.0\nValidating security checksum ✓\n", buf.String())
}

func TestTerminal_Progress(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, TerminalOptions{NoColor: true, Width: 10, RedrawInterval: time.Hour})

	term.Progress(0, 2048)
	term.Progress(512, 2048) // throttled
	term.Progress(2048, 2048)
	term.Clear()

	out := buf.String()
	assert.Contains(t, out, "Downloading [          ]   0%")
	assert.NotContains(t, out, " 25%")
	assert.Contains(t, out, "Downloading [▤▤▤▤▤▤▤▤▤▤] 100% 2.0 KiB")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"))
}

func TestTerminal_ClearIsNoopWhenLineEmpty(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, TerminalOptions{NoColor: true})

	term.Clear()

	assert.Empty(t, buf.String())
}

func TestFormatBytes(t *testing.T) {
	testCases := map[string]struct {
		in  int64
		exp string
	}{
		"bytes":     {in: 512, exp: "512 B"},
		"kibibytes": {in: 1536, exp: "1.5 KiB"},
		"mebibytes": {in: 5 * 1024 * 1024, exp: "5.0 MiB"},
		"gibibytes": {in: 3 * 1024 * 1024 * 1024, exp: "3.0 GiB"},
	}

	for scenario, tc := range testCases {
		t.Run(scenario, func(t *testing.T) {
			assert.Equal(t, tc.exp, formatBytes(tc.in))
		})
	}
}

func TestFormatETA(t *testing.T) {
	assert.Equal(t, "0s", formatETA(0, 100, time.Second))
	assert.Equal(t, "0s", formatETA(100, 100, time.Second))
	assert.Equal(t, "3s", formatETA(25, 100, time.Second))
}
