// Package loaders provides implementations of the DocumentLoader
// interface for the file formats a knowledge directory may contain.
// Each loader knows how to extract plain text from one format.
//
// Loaders are registered with the Registry at startup; the document
// source picks a loader by file extension.
package loaders
