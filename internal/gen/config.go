package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultOutput is the file written next to the parsed sources.
	DefaultOutput = "xrow_gen.go"

	// Directive marks a struct for generation when it appears in the
	// struct's doc comment.
	Directive = "//xrow:generate"
)

// Config selects one package directory.
type Config struct {
	Dir    string   `yaml:"dir"`
	Output string   `yaml:"output,omitempty"`
	Types  []string `yaml:"types,omitempty"`

	// Check reports stale output instead of writing it.
	Check bool `yaml:"-"`
}

// File is the layout of an xrowgen.yaml file.
type File struct {
	Packages []Config `yaml:"packages"`
}

func (c Config) withDefaults() Config {
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	return c
}

// OutputPath returns the path of the generated file.
func (c Config) OutputPath() string {
	c = c.withDefaults()
	if filepath.IsAbs(c.Output) {
		return c.Output
	}
	return filepath.Join(c.Dir, c.Output)
}

// LoadFile reads a YAML config. Relative package directories are resolved
// against the directory of path.
func LoadFile(path string) ([]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("gen: parse %s: %w", path, err)
	}
	if len(f.Packages) == 0 {
		return nil, fmt.Errorf("gen: %s lists no packages", path)
	}
	base := filepath.Dir(path)
	for i := range f.Packages {
		p := &f.Packages[i]
		if p.Dir == "" {
			return nil, fmt.Errorf("gen: %s: package %d has no dir", path, i)
		}
		if !filepath.IsAbs(p.Dir) {
			p.Dir = filepath.Join(base, p.Dir)
		}
	}
	return f.Packages, nil
}
