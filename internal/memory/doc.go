// Package memory sets the Go soft memory limit for manifest runs inside
// containers.
//
// A manifest run holds the whole tree in memory, so in a memory-limited
// container the Go heap should be kept below the container limit before
// the kernel's OOM killer steps in. [Configure] derives GOMEMLIMIT from the
// limit passed down by the orchestrator (GALLERY_MEMORY_LIMIT, for example
// from the Kubernetes Downward API) and a ratio (GALLERY_MEMORY_RATIO,
// default 0.85).
//
// Precedence:
//  1. GOMEMLIMIT in the environment is left as the runtime parsed it.
//  2. A positive container limit sets GOMEMLIMIT to limit * ratio.
//  3. Otherwise nothing is changed.
package memory
