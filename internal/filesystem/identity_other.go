//go:build !unix

package filesystem

import "os"

func fileIdentity(os.FileInfo) (string, bool) {
	return "", false
}
