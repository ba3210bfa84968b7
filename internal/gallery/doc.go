/*
Package gallery builds the navigable tree of a media collection.

A live build walks the collection through a filesystem.Source, applies the
ordering overrides, resolves every cover bottom-up and returns an immutable
Tree. A snapshot is the same tree persisted as JSON by the manifest generator;
Load replays it instead of scanning when configured to, and both paths yield
trees with identical addresses, covers and media lists.

# Node Shape

  - A node with children never exposes media, even if the directory holds
    media files; those remain cover candidates only.
  - A leaf with one media file exposes exactly that file.
  - A leaf with several files exposes them all in display order, repeats
    from an ".order" override included.

# Safety

Each build tracks the canonical identity of every directory it enters. A
directory reached a second time (a symlink loop, or two links to the same
place) is shown as an empty node. Descent also stops at a fixed depth.

# Lookup

Tree.Lookup and Tree.Resolve descend one segment at a time, matching children
by identifier or by name (compared in Unicode NFC). A miss anywhere is
ErrNotFound; there is no partial match.
*/
package gallery
