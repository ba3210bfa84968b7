// Package address implements public addresses and the override address
// grammar shared by cover overrides and alias lists.
package address
