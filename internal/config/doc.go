// Package config handles application configuration loading and validation.
//
// Configuration is loaded from environment variables with static defaults,
// optionally seeded from a .env file in the working directory. The resulting
// Config is built once at startup and passed to the components that need it.
package config
