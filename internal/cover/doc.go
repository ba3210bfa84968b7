/*
Package cover resolves the single representative image of a directory.

Tiers, first hit wins:

 1. The first line of ".cover". A media filename is case-corrected against
    the real entries from the collection root. When that fails and the line
    was relative, the subtree below the directory is searched breadth first,
    exact name before case-insensitive. A line naming a directory yields that
    directory's first media file in natural order.
 2. The only media file directly in the directory.
 3. The first child, in display order, with a cover or a media file of its own.

An override that is malformed, escapes the collection or points at nothing
falls through to the next tier. No tier ever returns an error; a directory
may simply have no cover.
*/
package cover
