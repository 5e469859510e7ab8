// Package mediatypes decides which files the gallery builder treats as photos.
//
// This package exists as a dependency-free foundation shared by the importer and
// the manifest builder, so both phases agree on eligibility. It contains the
// extension allow-list and the classifier built on it.
//
// # Eligibility
//
// A file is eligible when it is an existing regular file whose extension,
// compared case-insensitively, is one of jpg, jpeg, png, webp or heic:
//
//	if mediatypes.IsImage(path) {
//	    // copy it, thumbnail it, list it
//	}
//
// Eligibility says nothing about decodability. A corrupt .jpg is still eligible
// and fails later, when the thumbnail generator decodes it.
//
// Callers that already hold an extension can skip the stat:
//
//	ext := filepath.Ext(name)
//	if mediatypes.IsImageExt(ext) {
//	    // ...
//	}
package mediatypes
