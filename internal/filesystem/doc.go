/*
Package filesystem is the only place the indexer touches the collection on disk.

# Source

Every resolver (ordering, cover, gallery, alias, manifest) reads the collection
through the Source interface: a sorted directory listing that never fails, a file
read, and a canonical directory identity for cycle detection. BillySource
implements it over a go-billy filesystem rooted at the collection root:

	src, err := filesystem.Open("/srv/photos")
	entries := src.ListDirectory("2024/summer")

Paths are slash-separated and relative to the root; the root itself is "".

# Caching

CachedSource memoizes listings in a bounded LRU. Create one per build and drop it
afterwards; it is never shared between builds.

# Retry Behavior

Reads, listings, stats and writes retry NFS stale file handle errors (ESTALE)
with exponential backoff:
  - MaxRetries: 3 attempts
  - InitialBackoff: 50ms
  - MaxBackoff: 500ms

All other errors fail immediately. ListDirectory turns the final error into an
empty listing so one unreadable directory never aborts a build.

# Writes

WriteIfChanged is used by the manifest generator. It compares against the
existing bytes first and replaces the file through a temp file and rename.
*/
package filesystem
