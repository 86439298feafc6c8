// Package common holds small helpers shared by the internal packages.
package common

import "path"

// PkgAlias returns the default import name of pkgPath, its last element.
// Schema files may name rowcodec/record_test.AX as "record_test.AX".
// Returns "" for "".
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}
