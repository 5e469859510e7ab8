// Package logging provides a simple leveled logging interface for the
// gallery builder.
//
// It supports the following log levels:
//   - DEBUG: Per-file progress (each copy, each thumbnail)
//   - INFO: Phase results and resolved configuration
//   - WARN: Recoverable oddities such as thumbnail path collisions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The initial level comes from the DEBUG or LOG_LEVEL environment variables and
// can be replaced at runtime with SetLevel, which is how the config file's
// [logging] level is applied.
package logging
