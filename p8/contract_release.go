//go:build release

package p8

const checkContracts = false
