// Package config loads application settings from an optional .env file,
// an optional config.yaml and CROWDCHAIN_-prefixed environment variables,
// then validates them with struct tags.
package config
