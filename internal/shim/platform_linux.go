package shim

// Native returns the platform matching the build target.
func Native() string { return Linux }
