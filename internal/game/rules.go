package game

import "errors"

var ErrInsufficientResource = errors.New("insufficient_resource")
var ErrInvalidSelection = errors.New("invalid_selection")
var ErrPhaseMismatch = errors.New("phase_mismatch")
var ErrUnknownPlayer = errors.New("unknown_player")
var ErrUnknownCard = errors.New("unknown_card")

// phaseAllows gates player actions to the phases they are valid in.
// Everything else is rejected synchronously with ErrPhaseMismatch.
func phaseAllows(phase Phase, action string) bool {
	switch action {
	case "purchase", "reroll", "field", "pitch":
		return phase == PhasePreparation
	case "ready":
		return phase == PhaseMatching || phase == PhasePreparation ||
			phase == PhaseSubmissionReview || phase == PhaseRoundResult
	case "restart":
		return phase == PhaseFinalRanking
	default:
		return false
	}
}
