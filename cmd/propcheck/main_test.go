package main

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/good/server.properties", []byte("motd=hi\nmax-players=20\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/bad.properties", []byte("max-players=5000\ndifficulty=nightmare\n"), 0o644))

	tests := []struct {
		name     string
		args     []string
		code     int
		contains []string
		absent   []string
	}{
		{
			name:     "clean directory",
			args:     []string{"/good"},
			code:     exitOK,
			contains: []string{"/good/server.properties: ok"},
		},
		{
			name:     "warnings",
			args:     []string{"/good", "/bad.properties"},
			code:     exitWarnings,
			contains: []string{
				"/good/server.properties: ok",
				`/bad.properties: max-players: outside the allowed range 1..1000 (value "5000")`,
				"/bad.properties: difficulty: must be one of",
			},
		},
		{
			name:   "quiet",
			args:   []string{"-q", "/bad.properties"},
			code:   exitWarnings,
			absent: []string{"max-players"},
		},
		{
			name: "missing file",
			args: []string{"/nope"},
			code: exitError,
		},
		{
			name: "no arguments",
			args: []string{},
			code: exitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			code := run(fs, tt.args, &out, &errOut)

			assert.Equal(t, tt.code, code, errOut.String())
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}
