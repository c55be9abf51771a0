// Package logger provides structured logging functionality for the ytx project.
//
// Features:
//   - Multiple log levels (TRACE, DEBUG, INFO, WARN, ERROR)
//   - Component-based filtering
//   - Multiple output formats (text, JSON, color)
//   - Thread-safe operations
//   - Configurable output and formatting
//
// Usage:
//
//	// Get a component logger
//	log := logger.WithComponent(logger.ComponentPlayer)
//
//	// Log messages with different levels
//	log.Info("Analyzing player script", map[string]interface{}{
//		"version": "4fbb4d5b",
//		"size":    1024,
//	})
//
//	// Configure global logger
//	config := logger.DefaultConfig()
//	config.Level = logger.DEBUG
//	config.Format = logger.FormatJSON
//	logger.SetGlobalLogger(logger.New(config))
//
// Components:
//   - ComponentApp: Main application logs
//   - ComponentBlob: Embedded data block discovery logs
//   - ComponentSchema: Payload normalization logs
//   - ComponentEntity: Entity construction logs
//   - ComponentPlayer: Player script analysis and deciphering logs
//   - ComponentBrowse: Pagination logs
//   - ComponentClient: HTTP client logs
package logger
