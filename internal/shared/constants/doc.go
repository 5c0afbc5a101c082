// Package constants centralizes defaults shared across the CLI.
//
// File permissions, certificate probe bounds and the scan log location live
// here so cmd/ and internal/ reference one value without import cycles.
package constants
