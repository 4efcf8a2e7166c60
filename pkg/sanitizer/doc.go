// Package sanitizer normalizes untrusted request input before it reaches the
// data store or the filesystem.
//
// All functions are idempotent on their own output and never return errors;
// input that cannot be made safe comes back as an empty string.
//
// Normalization includes:
//   - Search keywords: control characters removed, regex metacharacters escaped
//   - Asset paths: cleaned, rooted, and stripped of traversal segments
package sanitizer
