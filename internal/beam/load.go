package beam

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a batch of beams
type File struct {
	Beams []Input `json:"beams" yaml:"beams"`
}

// LoadFile reads a batch of beam inputs from a JSON or YAML file
func LoadFile(path string) ([]Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported beam file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(f.Beams) == 0 {
		return nil, &ValidationError{fmt.Sprintf("%s: no beams defined", path)}
	}
	return f.Beams, nil
}
