package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultCheckIPURL = "https://httpbin.org/ip"
	DefaultAPIBaseURL = "https://api.cloudflare.com/client/v4"
)

// flag name -> config key
var flagKeys = map[string]string{
	"domain":      "Domain.Value",
	"domain-file": "Domain.File",
	"email":       "Email.Value",
	"email-file":  "Email.File",
	"token":       "Token.Value",
	"token-file":  "Token.File",
	"log-level":   "LogLevel",
	"interval":    "Interval",
	"verify":      "VerifyToken",
}

// config key -> environment variable
var envKeys = map[string]string{
	"Domain.Value": "CF_DOMAIN",
	"Domain.File":  "CF_DOMAIN_FILE",
	"Email.Value":  "CF_EMAIL",
	"Email.File":   "CF_EMAIL_FILE",
	"Token.Value":  "CF_TOKEN",
	"Token.File":   "CF_TOKEN_FILE",
	"LogLevel":     "CFDDNS_LOGLEVEL",
	"Interval":     "CFDDNS_INTERVAL",
	"Timeout":      "CFDDNS_TIMEOUT",
	"CheckIPURL":   "CFDDNS_CHECKIPURL",
	"APIBaseURL":   "CFDDNS_APIBASEURL",
	"VerifyToken":  "CFDDNS_VERIFYTOKEN",
}

// New builds a viper instance layering flags over environment over the config
// file. A missing config file is fine unless --config names one explicitly.
func New(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("LogLevel", "info")
	v.SetDefault("Interval", 0)
	v.SetDefault("Timeout", 0)
	v.SetDefault("CheckIPURL", DefaultCheckIPURL)
	v.SetDefault("APIBaseURL", DefaultAPIBaseURL)
	v.SetDefault("VerifyToken", false)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var path string
	if fs != nil {
		path, _ = fs.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/" + AppName)
	v.AddConfigPath("$HOME/." + AppName)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	inputs := []struct {
		name  string
		input Input
	}{
		{"domain", c.Domain},
		{"email", c.Email},
		{"token", c.Token},
	}
	for _, in := range inputs {
		hasValue, hasFile := in.input.Value != "", in.input.File != ""
		switch {
		case hasValue && hasFile:
			return fmt.Errorf("--%s and --%s-file are mutually exclusive", in.name, in.name)
		case !hasValue && !hasFile:
			return fmt.Errorf("one of --%s or --%s-file is required", in.name, in.name)
		}
	}

	if c.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %d", c.Interval)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %d", c.Timeout)
	}
	return nil
}
