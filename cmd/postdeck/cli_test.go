package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"users":    false,
		"posts":    false,
		"comments": false,
		"overview": false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		assert.True(t, found, "missing subcommand %s", name)
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("7", "user id")
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	for _, bad := range []string{"", "abc", "0", "-4", "1.5"} {
		_, err := parseID(bad, "user id")
		assert.Error(t, err, "input %q", bad)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"ID", "TITLE"},
		[][]string{
			{"1", "first"},
			{"2", "a much longer title"},
		},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[1], "first")
	assert.Contains(t, lines[2], "a much longer title")
}

func TestClipFlattensAndBounds(t *testing.T) {
	assert.Equal(t, "one two", clip("one\ntwo", 20))
	got := clip(strings.Repeat("x", 100), 10)
	assert.Equal(t, "xxxxxxx...", got)
}

func TestUsersCommandAgainstStub(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Leanne Graham","username":"Bret","email":"leanne@example.com"}]`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"users", "--api-url", srv.URL})
	defer func() {
		apiURL = ""
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Leanne Graham")
	assert.Contains(t, buf.String(), "@Bret")
}
