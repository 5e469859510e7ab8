// Package media turns one original photo into a gallery thumbnail.
//
// A Thumbnailer decodes the original, applies its EXIF orientation so the
// pixels are upright, flattens it to opaque RGB, shrinks it with a Lanczos
// filter until neither side exceeds MaxDimension (never enlarging), and writes
// a JPEG at the configured quality. The orientation tag is not carried into
// the thumbnail.
//
// Decoding failures are reported as *DecodeError so callers can tell a bad
// photo from a filesystem problem.
package media
