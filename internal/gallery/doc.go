// Package gallery builds the gallery manifest from the staging tree.
//
// The staging tree is a pair of directories: full/ holds the originals and
// thumb/ mirrors it with one .jpg thumbnail per original. A Builder walks
// full/, has a thumbnail generated for every eligible image and writes a
// Manifest listing each photo's original and thumbnail as web paths relative
// to the manifest file.
//
// The manifest is rebuilt from scratch on every run and replaced atomically
// only after every thumbnail succeeded. Thumbnails written before a failure
// stay on disk; running the build again regenerates them.
package gallery
