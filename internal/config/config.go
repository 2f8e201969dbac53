package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/Jx2f/AribasRand/pkg/clock"
	"github.com/Jx2f/AribasRand/pkg/crypto/crt"
)

type Config struct {
	LogLevel string       `json:"logLevel,omitempty"`
	Listen   string       `json:"listen,omitempty"`
	Platform string       `json:"platform,omitempty"`
	Clock    string       `json:"clock,omitempty"`
	Crack    *ConfigCrack `json:"crack,omitempty"`
}

type ConfigCrack struct {
	Workers   int    `json:"workers,omitempty"`
	MaxWindow uint32 `json:"maxWindow,omitempty"`
}

func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c := new(Config)
	d := json.NewDecoder(f)
	d.DisallowUnknownFields()
	if err := d.Decode(c); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validate %s", path)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("no listen address configured")
	}
	if c.Platform == "" {
		c.Platform = DefaultConfig.Platform
	}
	if _, err := crt.ParsePlatform(c.Platform); err != nil {
		return err
	}
	if _, ok := clock.New(c.Clock); !ok {
		return errors.Errorf("unknown clock %q", c.Clock)
	}
	if c.Crack == nil {
		c.Crack = DefaultConfig.Crack
	}
	if c.Crack.Workers < 0 {
		return errors.Errorf("negative crack workers %d", c.Crack.Workers)
	}
	return nil
}

// DefaultPlatform is the platform of a fresh connection.
func (c *Config) DefaultPlatform() crt.Platform {
	p, _ := crt.ParsePlatform(c.Platform)
	return p
}

func (c *Config) NewClock() clock.Clock {
	k, _ := clock.New(c.Clock)
	return k
}

var DefaultConfig = &Config{
	LogLevel: "info",
	Listen:   "127.0.0.1:6380",
	Platform: crt.Linux.String(),
	Clock:    "system",
	Crack: &ConfigCrack{
		Workers:   4,
		MaxWindow: 1 << 26,
	},
}
