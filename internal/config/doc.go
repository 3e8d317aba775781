// Package config defines the application's configuration structure and the
// viper-based loader that populates it from environment variables and an
// optional config file. All product-tunable study constants (quotas,
// mastery threshold, daily goal, undo depth) live here.
package config
