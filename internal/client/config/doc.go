// Package config loads runtime configuration for the Goowi CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed GOOWI_, optionally read from a .env file
//     in the working directory (see parseEnv).
//  3. Optional JSON file selected via -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the Goowi REST API
//	-d string   path of the local sqlite data file
//	-t int      request timeout (seconds); only applied when given
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "15s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://api.goowi.example/api",
//	  "data_file": "/var/lib/goowi/goowi.db",
//	  "request_timeout": "15s",
//	  "requests_per_second": 10,
//	  "log_level": "info",
//	  "page_size": 10,
//	  "reconcile_after": "2m",
//	  "reconcile_every": 5,
//	  "media": {
//	    "endpoint": "https://s3.example",
//	    "region": "us-east-1",
//	    "bucket": "goowi-media",
//	    "access_key": "...",
//	    "secret_key": "...",
//	    "public_base_url": "https://cdn.example/goowi-media"
//	  }
//	}
package config
