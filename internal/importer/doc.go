// Package importer copies eligible photos from an external folder into the
// staging tree, keeping their subfolder layout.
package importer
