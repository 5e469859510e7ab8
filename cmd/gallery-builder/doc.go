// Package main provides the gallery-builder command.
//
// gallery-builder prepares a static photo gallery for publication. One run:
//
//  1. Configuration: defaults, gallery.toml, environment, then flags
//  2. Run lock: refuses to start while another run holds the project lock
//  3. Import (optional): copies images from --source into the full/ staging tree
//  4. Build: regenerates a JPEG thumbnail for every original under full/ and
//     rewrites gallery.json
//  5. Metrics: writes a Prometheus textfile when --metrics-file is set
//
// The command exits non-zero when the import source is missing or any image
// fails to decode. On success it prints one status line per stage, followed by
// a summary table when stdout is a terminal.
//
// Usage:
//
//	gallery-builder [--source DIR] [--root DIR] [--config FILE]
//	                [--metrics-file FILE] [--log-level LEVEL]
//
// Pass --source "" to rebuild from the existing staging tree without importing.
package main
