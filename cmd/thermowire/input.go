package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/thermofleet/thermowire/firmware"
)

// document is the CLI input: one device configuration and its schedule.
type document struct {
	Configuration firmware.Configuration `json:"configuration" yaml:"configuration"`
	Settings      []firmware.Setting     `json:"settings,omitempty" yaml:"settings,omitempty"`
}

type inputFormat string

const (
	formatYAML inputFormat = "yaml"
	formatJSON inputFormat = "json"
	formatCBOR inputFormat = "cbor"
)

// cborDecMode rejects fields the document does not define, like the YAML and
// JSON decoders below.
var cborDecMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}

	return dm
}()

// detectFormat picks the input format from an explicit flag value or the file extension.
func detectFormat(flag, path string) (inputFormat, error) {
	if flag != "" {
		switch f := inputFormat(strings.ToLower(flag)); f {
		case formatYAML, formatJSON, formatCBOR:
			return f, nil
		case "yml":
			return formatYAML, nil
		default:
			return "", fmt.Errorf("unknown input format %q", flag)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".cbor":
		return formatCBOR, nil
	default:
		return formatYAML, nil
	}
}

// parseDocument decodes a single document from r.
func parseDocument(r io.Reader, f inputFormat) (*document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("input is empty")
	}

	doc := &document{}
	switch f {
	case formatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(doc)
	case formatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(doc)
	case formatCBOR:
		err = cborDecMode.Unmarshal(data, doc)
	default:
		return nil, fmt.Errorf("unknown input format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s input: %w", f, err)
	}

	return doc, nil
}
