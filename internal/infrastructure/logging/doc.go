// Package logging provides structured logging using uber/zap.
//
// Two output modes are supported:
//   - Production: JSON lines for machine parsing
//   - Development: colored console output for humans
//
// Logs go to stderr so stdout stays free for the process supervisor.
//
// What gets logged where:
//   - Info: startup, shutdown, session lifecycle, failed tool calls
//   - Debug: every tool call and filesystem action
//   - Warn: transport errors and rejected requests
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "debug"})
//	if err != nil {
//	    return err
//	}
//	logger.Info("Server starting", zap.String("root", root))
package logging
