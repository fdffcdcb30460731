// Package config loads oauthkit configuration from YAML files and the
// environment.
//
// Layering is file first, environment second: a config.yml provides the
// base, a .env file (loaded via godotenv) and real environment variables
// override it. Environment keys map onto nested config paths by underscore
// splitting, so OAUTH_FLOW_CLIENT_SECRET reaches flow.client_secret without
// per-field binding.
//
//	var cfg oauthkit.Config
//	err := config.Load(&cfg, config.WithConfigFile("config.yml"))
package config
