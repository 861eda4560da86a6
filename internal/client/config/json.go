package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/goowi/internal/flagx"
	"github.com/dmitrijs2005/goowi/internal/timex"
	"gopkg.in/yaml.v3"
)

// JsonMedia mirrors MediaConfig for JSON unmarshalling.
type JsonMedia struct {
	Endpoint      string `json:"endpoint"`
	Region        string `json:"region"`
	Bucket        string `json:"bucket"`
	AccessKey     string `json:"access_key"`
	SecretKey     string `json:"secret_key"`
	PublicBaseURL string `json:"public_base_url"`
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-valued fields are treated as "not set" so a partial file only
// overrides what it names.
type JsonConfig struct {
	APIBaseURL        string          `json:"api_base_url"`
	DataFile          string          `json:"data_file"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	RequestsPerSecond *float64        `json:"requests_per_second"`
	LogLevel          string          `json:"log_level"`
	PageSize          int             `json:"page_size"`
	ReconcileAfter    *timex.Duration `json:"reconcile_after"`
	ReconcileEvery    int             `json:"reconcile_every"`
	Media             *JsonMedia      `json:"media"`
}

// parseJson overlays cfg with values from the config file named by
// -c/-config. Files ending in .yaml or .yml are read as YAML with the same
// keys. It panics on read or unmarshal errors; main recovers nothing, a
// broken config file is fatal.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc, err := parseConfigFile(data, path)
	if err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func parseConfigFile(data []byte, filename string) (*JsonConfig, error) {
	var jc JsonConfig
	if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		// YAML is normalised through JSON so durations share one decoder.
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		data = b
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return &jc, nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DataFile != "" {
		cfg.DataFile = jc.DataFile
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *jc.RequestsPerSecond
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.ReconcileAfter != nil {
		cfg.ReconcileAfter = jc.ReconcileAfter.Duration
	}
	if jc.ReconcileEvery > 0 {
		cfg.ReconcileEvery = jc.ReconcileEvery
	}
	if m := jc.Media; m != nil {
		if m.Endpoint != "" {
			cfg.Media.Endpoint = m.Endpoint
		}
		if m.Region != "" {
			cfg.Media.Region = m.Region
		}
		if m.Bucket != "" {
			cfg.Media.Bucket = m.Bucket
		}
		if m.AccessKey != "" {
			cfg.Media.AccessKey = m.AccessKey
		}
		if m.SecretKey != "" {
			cfg.Media.SecretKey = m.SecretKey
		}
		if m.PublicBaseURL != "" {
			cfg.Media.PublicBaseURL = m.PublicBaseURL
		}
	}
}
