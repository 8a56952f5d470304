package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	"github.com/thermofleet/thermowire"
	"github.com/thermofleet/thermowire/envelope"
	"github.com/thermofleet/thermowire/firmware"
	"github.com/thermofleet/thermowire/format"
)

type encodeOptions struct {
	*rootOptions

	input       string
	format      string
	compression string
	framed      bool
	maxLength   int
	now         string
	hex         bool
	emit        string
}

// record is the --emit cbor output.
type record struct {
	Magic       string `cbor:"magic"`
	Text        string `cbor:"text"`
	Size        int    `cbor:"size"`
	Compression string `cbor:"compression"`
	Fingerprint uint64 `cbor:"fingerprint"`
}

func newEncodeCmd(root *rootOptions) *cobra.Command {
	opts := &encodeOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a configuration document into an envelope string",
		Long: `Encode a configuration document into the envelope string sent to a thermostat.

The document holds a "configuration" object and a "settings" list:

  configuration:
    threshold: 0.5
    cadence: 120
    timezone: Europe/Berlin
    availableActions: [Heat, Cool]
  settings:
    - type: Hold
      setPointHeat: 18
      setPointCool: 22.5
      allowedActions: [Cool, Circulate]
      holdUntil: 2026-10-20T06:00:00Z

Timezone transitions are computed for the current time, or for --now.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEncode(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "Input document path, - for stdin")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Input format: yaml, json or cbor (default: from file extension, else yaml)")
	cmd.Flags().StringVarP(&opts.compression, "compression", "c", "none", "Frame compression: none, zstd, s2 or lz4")
	cmd.Flags().BoolVar(&opts.framed, "framed", false, "Wrap the buffer in a frame even without compression")
	cmd.Flags().IntVar(&opts.maxLength, "max-length", 0, "Fail if the envelope is longer than this many characters (0: no limit)")
	cmd.Flags().StringVar(&opts.now, "now", "", "Encode as of this RFC 3339 time instead of the current time")
	cmd.Flags().BoolVar(&opts.hex, "hex", false, "Also print a hex dump of the binary buffer")
	cmd.Flags().StringVar(&opts.emit, "emit", "text", "Output: text, or cbor for a binary record with size and fingerprint")

	return cmd
}

func runEncode(cmd *cobra.Command, opts *encodeOptions) error {
	logger, err := opts.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if opts.emit != "text" && opts.emit != "cbor" {
		return fmt.Errorf("invalid --emit %q: want text or cbor", opts.emit)
	}
	if opts.hex && opts.emit == "cbor" {
		return fmt.Errorf("--hex cannot be combined with --emit cbor")
	}

	compression, err := format.ParseCompression(opts.compression)
	if err != nil {
		return err
	}

	clock := time.Now
	if opts.now != "" {
		now, err := time.Parse(time.RFC3339, opts.now)
		if err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
		clock = func() time.Time { return now }
	}

	inFormat, err := detectFormat(opts.format, opts.input)
	if err != nil {
		return err
	}
	doc, err := readDocument(cmd, opts.input, inFormat)
	if err != nil {
		return err
	}

	envOpts := []envelope.Option{envelope.WithCompression(compression), envelope.WithMaxTextLength(opts.maxLength)}
	if opts.framed {
		envOpts = append(envOpts, envelope.WithFraming())
	}

	enc, err := thermowire.NewEncoder(
		thermowire.WithFirmwareOptions(firmware.WithClock(clock), firmware.WithLogger(logger)),
	)
	if err != nil {
		return err
	}

	bin, err := enc.EncodeBinary(&doc.Configuration, doc.Settings)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	payload, err := envelope.Encode(bin, envOpts...)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	logger.Info("encoded configuration",
		"settings", len(doc.Settings),
		"size", payload.Size,
		"text_length", len(payload.Text),
		"compression", payload.Compression,
		"fingerprint", fmt.Sprintf("%016x", payload.Fingerprint),
	)

	out := cmd.OutOrStdout()
	if opts.emit == "cbor" {
		return writeRecord(out, payload)
	}

	fmt.Fprintln(out, payload.Text)
	if opts.hex {
		fmt.Fprint(out, hex.Dump(bin))
	}

	return nil
}

func readDocument(cmd *cobra.Command, path string, f inputFormat) (*document, error) {
	if path == "-" {
		return parseDocument(cmd.InOrStdin(), f)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return parseDocument(file, f)
}

func writeRecord(w io.Writer, p *envelope.Payload) error {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return err
	}

	data, err := em.Marshal(record{
		Magic:       p.Text[:envelope.MagicLength],
		Text:        p.Text,
		Size:        p.Size,
		Compression: strings.ToLower(p.Compression.String()),
		Fingerprint: p.Fingerprint,
	})
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
