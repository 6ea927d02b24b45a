package domain

// Engine integrates water and sediment temperature over one validated step.
// Implementations receive only validated inputs; all data-quality gating
// happens before Step is called. elapsedDays may be negative when the host
// supplies non-monotonic timestamps, and implementations must tolerate it.
type Engine interface {
	Step(in StepInput, state State, elapsedDays float64) (State, float64, error)
}
