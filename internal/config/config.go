// Copyright 2016 Michael Carlberg & contributors (polybar)

// Package config loads the polybar INI configuration: sections
// bar/<name>, module/<name>, global/wm, settings, with ${section.key}
// and ${BAR.key} reference expansion. Parsing itself is spf13/viper's
// job (§9 "global state" calls this out: INI syntax is the library's
// concern, polybar's section semantics are ours); reading the file goes
// through spf13/afero so tests can substitute an in-memory filesystem,
// matching colors.LoadFromConfig's afero use.
package config

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Config is the fully-loaded, reference-expanded set of INI sections.
type Config struct {
	sections map[string]map[string]string
	bar      string
}

// Load reads path from fs and parses it as polybar INI.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses raw INI bytes without touching the filesystem.
func Parse(data []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("ini")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	c := &Config{sections: map[string]map[string]string{}}
	for section, raw := range v.AllSettings() {
		nested, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		kv := make(map[string]string, len(nested))
		for k, val := range nested {
			kv[k] = fmt.Sprintf("%v", val)
		}
		c.sections[section] = kv
	}
	return c, nil
}

// SetBar records which bar/<name> section "${BAR.key}" expands against.
func (c *Config) SetBar(name string) {
	c.bar = name
}

// Get returns section.key after reference expansion.
func (c *Config) Get(section, key string) (string, bool) {
	kv, ok := c.sections[strings.ToLower(section)]
	if !ok {
		return "", false
	}
	raw, ok := kv[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	return c.resolve(raw, 0), true
}

// GetDefault is Get with a fallback for a missing key.
func (c *Config) GetDefault(section, key, def string) string {
	if v, ok := c.Get(section, key); ok {
		return v
	}
	return def
}

// Int parses section.key as an integer.
func (c *Config) Int(section, key string) (int, error) {
	v, ok := c.Get(section, key)
	if !ok {
		return 0, fmt.Errorf("config: %s.%s not set", section, key)
	}
	return strconv.Atoi(v)
}

// Bool parses section.key as true/false.
func (c *Config) Bool(section, key string) (bool, error) {
	v, ok := c.Get(section, key)
	if !ok {
		return false, fmt.Errorf("config: %s.%s not set", section, key)
	}
	switch strings.ToLower(v) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("config: %s.%s is not a bool: %q", section, key, v)
	}
}

// List collects the key-0, key-1, ... series for section.key, stopping
// at the first missing index.
func (c *Config) List(section, key string) []string {
	var out []string
	for i := 0; ; i++ {
		v, ok := c.Get(section, fmt.Sprintf("%s-%d", key, i))
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

var refPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_/-]+)\.([A-Za-z0-9_-]+)\}`)

// resolve expands ${section.key} and ${BAR.key} references, up to a
// fixed recursion depth to tolerate (but not infinite-loop on) cyclic
// references.
func (c *Config) resolve(value string, depth int) string {
	if depth > 8 {
		return value
	}
	return refPattern.ReplaceAllStringFunc(value, func(m string) string {
		groups := refPattern.FindStringSubmatch(m)
		section, key := groups[1], groups[2]
		if strings.EqualFold(section, "BAR") {
			section = "bar/" + c.bar
		}
		kv, ok := c.sections[strings.ToLower(section)]
		if !ok {
			return m
		}
		v, ok := kv[strings.ToLower(key)]
		if !ok {
			return m
		}
		return c.resolve(v, depth+1)
	})
}
