package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/boynton/data"
	"github.com/ghodss/yaml"
)

// Config is the generator's configuration bag: output directory,
// force-overwrite, sort, and arbitrary generator-specific knobs,
// wrapping the teacher's own github.com/boynton/data.Object rather
// than a bespoke struct, so "-a key=val" style flags and YAML files
// both land in the same generic container.
type Config struct {
	*data.Object
}

func NewConfig() *Config {
	return &Config{Object: data.NewObject()}
}

// LoadFile reads a YAML (or JSON, which is a YAML subset) config file
// into a new Config, via github.com/ghodss/yaml, the same library the
// teacher depends on for YAML<->JSON bridging.
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	asJSON, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	obj := data.NewObject()
	if err := json.Unmarshal(asJSON, obj); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &Config{Object: obj}, nil
}

func (c *Config) OutDir() string {
	return c.GetString("outdir")
}

func (c *Config) ForceOverwrite() bool {
	return c.GetBool("force")
}

func (c *Config) Sort() bool {
	return c.GetBool("sort")
}
