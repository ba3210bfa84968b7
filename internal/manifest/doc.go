/*
Package manifest is the offline batch pass over a collection.

A run performs the same live build as an interactive request and then
persists what it decided:

  - ".folders" in every directory with subdirectories, holding their
    resolved display order
  - ".images" in every directory with media except the collection root,
    holding the media display order with repeats removed
  - the JSON snapshot that gallery.Load can replay instead of scanning

Writes are atomic and skipped when the content is byte-identical. The
snapshot is compared by tree, not by bytes, so an unchanged collection keeps
its original generatedAt. Listing writes run concurrently on distinct files;
the generator assumes exclusive access to the collection while it runs.

	gen := manifest.NewGenerator(src, src.Filesystem(), manifest.Options{
	    SnapshotPath: "/srv/photos/.gallery.json",
	    History:      db,
	})
	report, err := gen.Run(ctx)
*/
package manifest
