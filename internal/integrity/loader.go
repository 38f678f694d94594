package integrity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadCatalogs reads projects, types, skills, tags and links from dataDir.
// Each <name>.json holds either {"<name>": [...]} or a bare array; a missing
// file is an empty catalog. Media is left to the caller.
func LoadCatalogs(dataDir string) (Catalogs, error) {
	var c Catalogs
	if err := loadList(dataDir, "projects", &c.Projects); err != nil {
		return Catalogs{}, err
	}
	for name, dst := range map[string]*[]Entry{
		"types":  &c.Types,
		"skills": &c.Skills,
		"tags":   &c.Tags,
		"links":  &c.Links,
	} {
		if err := loadList(dataDir, name, dst); err != nil {
			return Catalogs{}, err
		}
	}
	return c, nil
}

func loadList[T any](dataDir, name string, dst *[]T) error {
	p := filepath.Join(dataDir, name+".json")
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		*dst = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s catalog: %w", name, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] == '[' {
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("decoding %q: %w", p, err)
		}
		return nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding %q: %w", p, err)
	}
	raw, ok := doc[name]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding %q entries of %q: %w", name, p, err)
	}
	return nil
}
