// Package config loads mixedtabs settings.
//
// Settings are resolved in layers, each overriding the previous one:
//
//  1. Built-in defaults (Default)
//  2. A config file, TOML or YAML by extension
//  3. A .env file in the working directory
//  4. MIXEDTABS_* environment variables
//  5. Command-line flags (Overrides)
//
// Example TOML file:
//
//	[editor]
//	tabSize = 4
//
//	[infobar]
//	enabled = true
//	autoFix = "tabify"
//
//	[logging]
//	level = "debug"
//
//	[watch]
//	debounce = "200ms"
package config
