// Package cli implements the gallery command line.
//
//	gallery tree [--json] [--depth n]   print the tree
//	gallery show <address>              list a directory's tiles, aliases included
//	gallery cover <address>             print a directory's cover
//	gallery manifest                    write listings and the snapshot
//	gallery status                      show manifest run history
//	gallery version                     print build information
//
// Persistent flags mirror the GALLERY_* environment variables read by
// startup.LoadConfig.
package cli
