//go:build !linux && !darwin

package shim

// Native returns the platform matching the build target. Builds other than
// macOS use the Linux method set.
func Native() string { return Linux }
