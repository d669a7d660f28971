package application

type CheckOptions struct {
	// DryRun compares without establishing a baseline for unknown entities.
	DryRun bool
}
