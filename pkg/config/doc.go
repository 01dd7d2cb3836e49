// Package config handles configuration management for dupekeep.
// Values are layered from embedded defaults, the user config file, a
// project file in the working directory, DUPEKEEP_ environment variables
// and finally explicitly set command-line flags.
package config
