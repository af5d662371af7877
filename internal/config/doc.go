// Package config stores the editor's own preferences.
//
// Preferences live in a single JSON file in the per-user config directory,
// not next to the server:
//
//	$XDG_CONFIG_HOME/propedit/config.json
//
//	{
//	  "theme": "creeper",
//	  "reveal_secrets": false,
//	  "close_after_save": false,
//	  "close_delay": "1s",
//	  "log_level": "info",
//	  "log_file": "${HOME}/.cache/propedit.log"
//	}
//
// String values may reference environment variables with $VAR or ${VAR}.
// Unset variables are left as written. Missing keys take their defaults.
package config
