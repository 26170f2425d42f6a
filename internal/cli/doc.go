// Package cli provides command-line interface setup and configuration
// for wordwise. It handles flag parsing, command creation, and turning
// flags, config file and environment into translator settings using
// cobra and viper.
package cli
