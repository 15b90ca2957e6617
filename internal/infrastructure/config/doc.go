// Package config provides 12-factor configuration management for the
// filesystem server.
//
// Values are layered, later sources winning:
//
//	defaults < YAML/TOML file < environment variables < command-line flags
//
// The file is chosen by the -config flag or CONFIG_FILE and parsed by
// extension (.yaml/.yml or .toml). Flags are applied by cmd/server.
//
// Configuration Sections:
//   - Server: listen address and request body cap
//   - Filesystem: the allowed root directory
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting
//   - Session: MCP session idle expiry
//
// Example Usage:
//
//	cfg, err := config.LoadFile("server.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Serving %s on %s\n", cfg.Filesystem.AllowedRoot, cfg.Addr())
//
// Environment Variables:
//   - PORT, HOST, MAX_BODY_BYTES
//   - ALLOWED_ROOT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - SESSION_IDLE_TIMEOUT
//   - CONFIG_FILE
package config
