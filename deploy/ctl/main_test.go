package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
		err  bool
	}{
		{args: []string{"list"}, want: "list"},
		{args: []string{"LIST", "ignored"}, want: "list"},
		{args: []string{"click", "Council", "Chamber"}, want: "click Council Chamber"},
		{args: []string{"status", "40-S2-A01"}, want: "status 40-S2-A01"},
		{args: []string{"refresh", "513-1-024"}, want: "refresh 513-1-024"},
		{args: []string{"click"}, err: true},
		{args: []string{"reboot"}, err: true},
		{args: nil, err: true},
	}

	for _, tt := range tests {
		got, err := buildCommand(tt.args)
		if tt.err {
			assert.Error(t, err, tt.args)
			continue
		}
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, got)
	}
}

func TestRunUsageErrors(t *testing.T) {
	assert.Equal(t, 2, run([]string{"--yes", "--no", "list"}))
	assert.Equal(t, 2, run([]string{"reboot"}))
	assert.Equal(t, 2, run([]string{"--bogus"}))
}

func TestEnvOr(t *testing.T) {
	t.Setenv("RAVEM_BOX_SOCKET", "")
	assert.Equal(t, defaultSocket, envOr("RAVEM_BOX_SOCKET", defaultSocket))

	t.Setenv("RAVEM_BOX_SOCKET", "/run/ravem.sock")
	assert.Equal(t, "/run/ravem.sock", envOr("RAVEM_BOX_SOCKET", defaultSocket))
}
