package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/san-kum/springbar/internal/dynamo"
	"github.com/san-kum/springbar/internal/progress"
	"gopkg.in/yaml.v3"
)

// Encoding is a snapshot serialization format.
type Encoding int

const (
	JSON Encoding = iota
	YAML
)

func (e Encoding) String() string {
	switch e {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Ext returns the file extension including the dot.
func (e Encoding) Ext() string {
	if e == YAML {
		return ".yaml"
	}
	return ".json"
}

func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return JSON, dynamo.InvalidArgument("storage.ParseEncoding", "encoding", name, "want json or yaml")
	}
}

// EncodingFromPath picks the encoding from a file extension.
func EncodingFromPath(path string) (Encoding, error) {
	return ParseEncoding(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Encode writes v to w, indented.
func Encode(w io.Writer, enc Encoding, v any) error {
	switch enc {
	case JSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(v)
	case YAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(v); err != nil {
			return err
		}
		return e.Close()
	default:
		return dynamo.InvalidArgument("storage.Encode", "encoding", int(enc), "unknown encoding")
	}
}

// Decode reads one value from r. Unknown fields are rejected.
func Decode(r io.Reader, enc Encoding, v any) error {
	switch enc {
	case JSON:
		d := json.NewDecoder(r)
		d.DisallowUnknownFields()
		return d.Decode(v)
	case YAML:
		d := yaml.NewDecoder(r)
		d.KnownFields(true)
		return d.Decode(v)
	default:
		return dynamo.InvalidArgument("storage.Decode", "encoding", int(enc), "unknown encoding")
	}
}

// DecodeSnapshot reads and validates a single bar snapshot.
func DecodeSnapshot(r io.Reader, enc Encoding) (progress.Snapshot, error) {
	var s progress.Snapshot
	if err := Decode(r, enc, &s); err != nil {
		return progress.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return progress.Snapshot{}, err
	}
	return s, nil
}

// DecodeGroup reads and validates a group document.
func DecodeGroup(r io.Reader, enc Encoding) (progress.GroupSnapshot, error) {
	var gs progress.GroupSnapshot
	if err := Decode(r, enc, &gs); err != nil {
		return progress.GroupSnapshot{}, fmt.Errorf("decode group: %w", err)
	}
	for _, ns := range gs.Bars {
		if err := ns.Validate(); err != nil {
			return progress.GroupSnapshot{}, fmt.Errorf("bar %q: %w", ns.Name, err)
		}
	}
	return gs, nil
}
