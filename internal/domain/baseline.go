package domain

import "time"

type BaselineOrigin string

const (
	OriginFirstObservation BaselineOrigin = "first_observation"
	OriginAccepted         BaselineOrigin = "accepted"
)

// Baseline is the last accepted layout of an entity.
type Baseline struct {
	Snapshot   LayoutSnapshot
	AcceptedAt time.Time
	Origin     BaselineOrigin
}

type BaselineState string

const (
	BaselineUnknown     BaselineState = "unknown"
	BaselineEstablished BaselineState = "established"
)

type Transition string

const (
	TransitionNone      Transition = "none"
	TransitionEstablish Transition = "establish"
)

// NextTransition is the per-entity baseline lifecycle: an unknown entity is
// established by its first observation, an established one is read-only.
func NextTransition(state BaselineState, result ComparisonResult) Transition {
	if state == BaselineUnknown && result.Verdict == VerdictFirstObservation {
		return TransitionEstablish
	}
	return TransitionNone
}
