// Package config loads perch's TOML configuration.
//
// The file lives at ~/.config/perch/config.toml unless a path is given. A
// missing file is not an error; every field has a default:
//
//	api_url = "http://localhost:8000"
//	log_dir = "~/.local/state/perch"
//	request_timeout = ""         # empty means requests never time out
//	poll_interval = "5m"
//	metrics_addr = ""            # empty disables the Prometheus endpoint
//
//	[[quick_links]]
//	name = "Jira"
//	url = "https://example.atlassian.net"
//
// Two environment variables take precedence over the file. PERCH_API_URL
// replaces api_url. PERCH_QUICK_LINKS holds a JSON array of {"name","url"}
// objects and replaces the quick links.
//
// Tilde paths are expanded and relative paths are made absolute.
package config
