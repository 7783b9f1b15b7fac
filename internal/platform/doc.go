// Package platform provides cross-platform filesystem operations. On Unix
// systems it applies permission bits directly; on Windows, where Unix-style
// permissions do not exist, the operations are no-ops.
package platform
