package schema

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/emapp/emapp/pkg/apperr"
)

// Register loads fileName from dir inside fsys and stores it under name.
//
// Files ending in .yaml or .yml are decoded as YAML, everything else as
// JSON. A missing directory or file, a document that does not parse, or a
// document without a properties object is an AppPlugin error. An empty
// document is skipped. Re-registering a name overwrites it.
func (r *Registry) Register(fsys fs.FS, dir, fileName, name string) error {
	if name == "" {
		return apperr.AppPlugin("schema_name", "schema name is required parameter")
	}
	if fsys == nil || dir == "" {
		return apperr.AppPlugin("schema_dir", "Schema error verify schema parameter")
	}
	if st, err := fs.Stat(fsys, dir); err != nil || !st.IsDir() {
		r.logger.Error("schema directory not found", slog.String("dir", dir), slog.Any("error", err))
		return apperr.AppPlugin("schema_dir", "Schema error verify schema parameter")
	}

	file := path.Join(dir, fileName)
	r.logger.Info("registering the schema", slog.String("schema", name), slog.String("file", file))

	if fileName == "" {
		return apperr.AppPlugin("schema", "Schema file not found")
	}
	data, err := fs.ReadFile(fsys, file)
	if errors.Is(err, fs.ErrNotExist) {
		return apperr.AppPlugin("schema", "Schema file not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.KindAppPlugin, err, map[string]any{"schema": "Schema file could not be read"})
	}

	doc, err := decode(file, data)
	if err != nil {
		return apperr.Wrap(apperr.KindAppPlugin, err, map[string]any{
			"schema": "Schema file " + file + " is not valid: " + err.Error(),
		})
	}
	return r.store(name, doc)
}

// RegisterDocument stores an already decoded schema document under name.
func (r *Registry) RegisterDocument(name string, doc map[string]any) error {
	if name == "" {
		return apperr.AppPlugin("schema_name", "schema name is required parameter")
	}
	normalized, err := normalize(doc)
	if err != nil {
		return apperr.Wrap(apperr.KindAppPlugin, err, map[string]any{"schema": "Schema " + name + " is not valid JSON"})
	}
	return r.store(name, normalized)
}

func decode(file string, data []byte) (map[string]any, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}

	var doc map[string]any
	switch strings.ToLower(path.Ext(file)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		// YAML yields ints and other Go types; align them with JSON decoding.
		return normalize(doc)
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
}

// normalize round-trips doc through encoding/json so every value has the
// shape json.Unmarshal produces.
func normalize(doc map[string]any) (map[string]any, error) {
	if doc == nil {
		return nil, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
