package generators

import "context"

// Completer is the upstream text-completion surface every generator depends
// on. Satisfied by *gemini.Client; tests substitute a stub.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
	Configured() bool
}

// ValidationError reports generated content that parsed as JSON but does
// not have the structure the generator asked for.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid generated content: " + e.Reason
}
