// Package docs provides the knowledge document source.
//
// Documents live in a flat directory; the source lists files whose
// extension has a registered loader and extracts their text. A
// fsnotify-based watcher coalesces change bursts into single
// invalidation signals so the chunk store rebuilds lazily.
package docs
