// Package filesystem provides the filesystem capability the resolution
// engine consumes: existence checks, directory listings, a prunable
// recursive walk, a read-permission probe, and directory creation.
//
// Implementations cover the real OS filesystem and an afero-backed one
// for tests. The engine treats every filesystem error as "not found";
// nothing here retries or escalates.
package filesystem
