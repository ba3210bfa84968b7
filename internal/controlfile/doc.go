// Package controlfile reads the dot-prefixed control files that steer the
// indexer. Nothing in here ever fails loudly: unreadable or malformed files
// are reported as absent so callers fall through to their next tier.
package controlfile
