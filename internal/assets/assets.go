// Package assets resolves game asset files from an on-disk asset pack, falling
// back to the defaults compiled into the binary.
package assets

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// WoodProperty is the world property listing the wood variants trees grow from.
const WoodProperty = "worldproperties/block/wood.json"

// ErrNotFound is returned when an asset exists neither on disk nor in the
// embedded defaults.
var ErrNotFound = errors.New("asset not found")

//go:embed defaults
var defaultsFS embed.FS

//go:embed worldproperty.schema.json
var worldPropertySchema string

// WorldProperty is a named list of variants, e.g. the wood species.
type WorldProperty struct {
	Code     string                 `json:"code"`
	Variants []WorldPropertyVariant `json:"variants"`
}

// WorldPropertyVariant is one entry of a WorldProperty.
type WorldPropertyVariant struct {
	Code string `json:"code"`
}

// Codes returns the variant codes in declaration order.
func (wp *WorldProperty) Codes() []string {
	out := make([]string, len(wp.Variants))
	for i, v := range wp.Variants {
		out[i] = v.Code
	}
	return out
}

// Store reads assets by slash-separated path.
type Store struct {
	disk     fs.FS // nil when no asset directory is configured
	fallback fs.FS
	schema   *jsonschema.Schema
	log      *slog.Logger
}

// New creates a Store rooted at dir. An empty dir serves only the embedded
// defaults.
func New(dir string, log *slog.Logger) (*Store, error) {
	fallback, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("embedded assets: %w", err)
	}
	schema, err := jsonschema.CompileString("worldproperty.schema.json", worldPropertySchema)
	if err != nil {
		return nil, fmt.Errorf("compile world property schema: %w", err)
	}

	s := &Store{fallback: fallback, schema: schema, log: log}
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("asset dir %s: %w", dir, err)
		}
		s.disk = os.DirFS(dir)
	}
	return s, nil
}

// TryGet returns the raw asset at path, preferring the on-disk pack.
func (s *Store) TryGet(path string) ([]byte, bool) {
	if !fs.ValidPath(path) {
		return nil, false
	}
	if s.disk != nil {
		data, err := fs.ReadFile(s.disk, path)
		if err == nil {
			return data, true
		}
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("read asset", "path", path, "error", err)
		}
	}
	data, err := fs.ReadFile(s.fallback, path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// WorldProperty loads and validates a world property asset.
func (s *Store) WorldProperty(path string) (*WorldProperty, error) {
	data, ok := s.TryGet(path)
	if !ok {
		return nil, fmt.Errorf("world property %s: %w", path, ErrNotFound)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse world property %s: %w", path, err)
	}
	if err := s.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate world property %s: %w", path, err)
	}

	var wp WorldProperty
	if err := json.Unmarshal(data, &wp); err != nil {
		return nil, fmt.Errorf("decode world property %s: %w", path, err)
	}
	return &wp, nil
}
