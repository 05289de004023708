package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	packed := filepath.Join(dir, "input.huff")
	output := filepath.Join(dir, "output.txt")

	data := []byte(strings.Repeat("she sells sea shells by the sea shore\n", 50))
	require.NoError(t, os.WriteFile(input, data, 0o666))

	var stdout, stderr bytes.Buffer
	require.Equal(t, exitOK, run([]string{"-e", input, "-o", packed}, nil, &stdout, &stderr), stderr.String())
	require.Contains(t, stderr.String(), "[INFO] encoded")
	require.NotContains(t, stderr.String(), "[DEBUG]")

	stderr.Reset()
	require.Equal(t, exitOK, run([]string{"-d", "-v", "-o", output, packed}, nil, &stdout, &stderr), stderr.String())
	require.Zero(t, stdout.Len())

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestRun_Stdio(t *testing.T) {
	var packed, stderr bytes.Buffer
	require.Equal(t, exitOK, run([]string{"-e", "-v", "-"}, strings.NewReader("abracadabra"), &packed, &stderr))
	require.Equal(t, 64, packed.Len())
	require.Contains(t, stderr.String(), "[DEBUG] tables:")
	require.Contains(t, stderr.String(), "Lookup(0x61) = \"0\"")

	var out bytes.Buffer
	require.Equal(t, exitOK, run([]string{"-d", "-i", "-"}, &packed, &out, &stderr))
	require.Equal(t, "abracadabra", out.String())
}

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"-e"},
		{"-e", "-d", "in"},
		{"in"},
		{"-e", "a", "b"},
		{"-x", "in"},
	} {
		var stdout, stderr bytes.Buffer
		require.Equal(t, exitUsage, run(args, nil, &stdout, &stderr), "args %q", args)
	}
}

func TestRun_Failures(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	corrupt := filepath.Join(dir, "corrupt.huff")
	output := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(empty, nil, 0o666))
	require.NoError(t, os.WriteFile(corrupt, []byte{1, 0, 0, 0, 0, 0, 0, 0, 'a', 1}, 0o666))

	var stdout, stderr bytes.Buffer
	require.Equal(t, exitFail, run([]string{"-e", empty, "-o", output}, nil, &stdout, &stderr))
	require.Contains(t, stderr.String(), "empty input")
	require.NoFileExists(t, output)

	stderr.Reset()
	require.Equal(t, exitFail, run([]string{"-d", corrupt, "-o", output}, nil, &stdout, &stderr))
	require.Contains(t, stderr.String(), "truncated stream")
	require.NoFileExists(t, output)

	stderr.Reset()
	require.Equal(t, exitFail, run([]string{"-d", filepath.Join(dir, "missing")}, nil, &stdout, &stderr))
	require.Contains(t, stderr.String(), "[ERROR]")
}
