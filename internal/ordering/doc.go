// Package ordering merges explicit display orders with the natural order of a
// directory.
//
// Precedence, identical for folders and media: the ".order" override, then
// the kind-specific fallback list (".folders" or ".images"), then natural
// filesystem order.
package ordering
