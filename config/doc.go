// Package config loads client settings from an optional YAML file, an
// optional .env file and EASYHTTP_* environment variables.
//
// Environment variables take precedence over the file. Nested keys join
// with an underscore, so throttle.rps is read from EASYHTTP_THROTTLE_RPS.
package config
