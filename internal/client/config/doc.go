// Package config loads runtime configuration for the admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after loading an optional .env file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Environment
//
//	POSKO_API_URL            API base URL
//	POSKO_STORE_PATH         credential store file
//	POSKO_REQUEST_TIMEOUT    per request timeout ("10s" or whole seconds)
//	POSKO_LOG_LEVEL          debug | info | warn | error
//
// Supported flags
//
//	-a string   API base URL
//	-s string   credential store file
//	-t int      per request timeout (seconds, 0 = none)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds. Missing or empty fields keep their previous value.
//
//	{
//	  "api_base_url": "https://api.posko.id/api",
//	  "store_path": "/var/lib/posko/admin.db",
//	  "request_timeout": "10s",
//	  "log_level": "debug"
//	}
package config
