// Package alias expands ".aliases" files into virtual children that point
// elsewhere in an already-built tree.
package alias
