// Package startup resolves the gallery builder's configuration once, at
// process start, into a Config that is passed explicitly to every pipeline
// component.
//
// # Configuration
//
// Values are layered, later layers winning:
//
//  1. Built-in defaults (assets/gallery/full, assets/gallery/thumb,
//     gallery.json, 1400px, quality 82, import from ~/Desktop/full_Photos)
//  2. A TOML file: --config, or gallery.toml in the project root if present
//  3. Environment: GALLERY_ROOT, GALLERY_SOURCE, LOG_LEVEL
//  4. Command-line flags
//
// The project root defaults to the directory holding the executable. Relative
// paths in the config file are resolved against the project root; the import
// source is resolved against the working directory after ~ expansion.
//
// A sample file:
//
//	brand = "Kram Studios"
//	service_area = "Located in VA — shoots anywhere in the US"
//	source = "~/Pictures/export"
//
//	[paths]
//	full_dir = "assets/gallery/full"
//	thumb_dir = "assets/gallery/thumb"
//	manifest = "gallery.json"
//
//	[thumbnails]
//	max_dimension = 1400
//	jpeg_quality = 82
//
//	[logging]
//	level = "info"
//
//	[metrics]
//	textfile = "/var/lib/node_exporter/textfile/gallery.prom"
//
// # Run lock
//
// AcquireRunLock takes an exclusive flock on a file in the project root so two
// runs never write into the same staging tree at once.
package startup
