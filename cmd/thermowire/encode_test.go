package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/thermofleet/thermowire/envelope"
)

func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestEncodeCmd_Stdin(t *testing.T) {
	stdout, _, err := runCLI(t, sampleYAML, "encode", "--now", "2026-01-15T12:00:00Z")
	require.NoError(t, err)

	text := strings.TrimSpace(stdout)
	require.True(t, strings.HasPrefix(text, envelope.Magic))
	require.NotContains(t, text, "\n")

	again, _, err := runCLI(t, sampleYAML, "encode", "--now", "2026-01-15T12:00:00Z")
	require.NoError(t, err)
	require.Equal(t, stdout, again)
}

func TestEncodeCmd_FileFormats(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o600))

	cborData, err := cbor.Marshal(sampleDocument())
	require.NoError(t, err)
	cborPath := filepath.Join(dir, "cfg.cbor")
	require.NoError(t, os.WriteFile(cborPath, cborData, 0o600))

	fromYAML, _, err := runCLI(t, "", "encode", "-i", yamlPath)
	require.NoError(t, err)
	fromCBOR, _, err := runCLI(t, "", "encode", "-i", cborPath)
	require.NoError(t, err)

	require.Equal(t, fromYAML, fromCBOR)
}

func TestEncodeCmd_Compression(t *testing.T) {
	stdout, _, err := runCLI(t, sampleYAML, "encode", "--compression", "zstd")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, envelope.FramedMagic))

	stdout, _, err = runCLI(t, sampleYAML, "encode", "--framed")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, envelope.FramedMagic))

	_, _, err = runCLI(t, sampleYAML, "encode", "--compression", "gzip")
	require.Error(t, err)
}

func TestEncodeCmd_Hex(t *testing.T) {
	stdout, _, err := runCLI(t, sampleYAML, "encode", "--hex")
	require.NoError(t, err)

	lines := strings.SplitN(stdout, "\n", 2)
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], envelope.Magic))
	require.True(t, strings.HasPrefix(lines[1], "00000000  "))
}

func TestEncodeCmd_EmitCBOR(t *testing.T) {
	stdout, _, err := runCLI(t, sampleYAML, "encode", "--emit", "cbor", "--compression", "s2")
	require.NoError(t, err)

	var rec record
	require.NoError(t, cbor.Unmarshal([]byte(stdout), &rec))
	require.Equal(t, envelope.FramedMagic, rec.Magic)
	require.True(t, strings.HasPrefix(rec.Text, rec.Magic))
	require.Equal(t, "s2", rec.Compression)
	require.Positive(t, rec.Size)
	require.NotZero(t, rec.Fingerprint)

	_, _, err = runCLI(t, sampleYAML, "encode", "--emit", "cbor", "--hex")
	require.Error(t, err)

	_, _, err = runCLI(t, sampleYAML, "encode", "--emit", "xml")
	require.Error(t, err)
}

func TestEncodeCmd_Logging(t *testing.T) {
	input := strings.Replace(sampleYAML, "cadence: 120", "cadence: 120\n  timezone: Nowhere/Special", 1)

	_, stderr, err := runCLI(t, input, "encode", "--log-level", "debug")
	require.NoError(t, err)
	require.Contains(t, stderr, "omitting timezone fields")
	require.Contains(t, stderr, "encoded configuration")
	require.Contains(t, stderr, "compression=none")

	_, stderr, err = runCLI(t, input, "encode")
	require.NoError(t, err)
	require.Empty(t, stderr)

	_, _, err = runCLI(t, input, "encode", "--log-level", "loud")
	require.Error(t, err)
}

func TestEncodeCmd_Errors(t *testing.T) {
	_, _, err := runCLI(t, "", "encode", "-i", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, _, err = runCLI(t, sampleYAML, "encode", "--now", "yesterday")
	require.Error(t, err)

	_, _, err = runCLI(t, sampleYAML, "encode", "--max-length", "10")
	require.ErrorIs(t, err, envelope.ErrTextTooLong)

	bad := strings.Replace(sampleYAML, "[Heat, Cool]", "[Heat, Defrost]", 1)
	_, stderr, err := runCLI(t, bad, "encode")
	require.Error(t, err)
	require.Contains(t, stderr, "Defrost")
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	require.Equal(t, "thermowire "+version+"\n", stdout)
}
