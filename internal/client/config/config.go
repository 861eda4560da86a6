package config

import "time"

// MediaConfig points the image uploader at an S3-compatible bucket.
//
// PublicBaseURL is the prefix under which uploaded objects are publicly
// readable; the returned image URL is PublicBaseURL + "/" + key.
type MediaConfig struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// Config holds runtime settings for the Goowi CLI.
//
// Fields:
//   - APIBaseURL: root of the Goowi REST API (e.g. http://127.0.0.1:3000/api).
//   - DataFile: sqlite file holding the persisted credential.
//   - RequestTimeout: per-request HTTP timeout.
//   - RequestsPerSecond: client-side pacing of API calls (0 disables it).
//   - LogLevel: debug, info, warn or error.
//   - PageSize: number of waves requested per feed page.
//   - ReconcileAfter / ReconcileEvery: how long / how many optimistic
//     participations the feed tolerates before refetching.
//   - Media: object storage used for uploaded images; an empty Bucket
//     disables uploads.
type Config struct {
	APIBaseURL        string
	DataFile          string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	LogLevel          string
	PageSize          int
	ReconcileAfter    time.Duration
	ReconcileEvery    int
	Media             MediaConfig
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:3000/api"
	c.DataFile = "goowi.db"
	c.RequestTimeout = 15 * time.Second
	c.RequestsPerSecond = 10
	c.LogLevel = "info"
	c.PageSize = 10
	c.ReconcileAfter = 2 * time.Minute
	c.ReconcileEvery = 5
	// no bucket: image uploads stay off until one is configured
	c.Media = MediaConfig{Region: "us-east-1"}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and an optional .env file), JSON (if -c/-config is given)
// and command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
