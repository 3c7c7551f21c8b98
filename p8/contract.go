//go:build !release

package p8

// checkContracts enables panics on calls a cart must never make.
// Build with -tags release to skip the checks.
const checkContracts = true
