package progression

import (
	"fmt"

	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

// Reasons attached to engine errors
const (
	ReasonInvalidLevel      = "INVALID_LEVEL"
	ReasonLevelCapExceeded  = "LEVEL_CAP_EXCEEDED"
	ReasonAlreadyMaxed      = "ALREADY_MAXED"
	ReasonNotFullyLeveled   = "NOT_FULLY_LEVELED"
	ReasonTierNotFound      = "TIER_NOT_FOUND"
	ReasonMalformedChain    = "MALFORMED_CHAIN"
	ReasonInvalidDefinition = "INVALID_DEFINITION"
	ReasonInvalidPower      = "INVALID_POWER"
	ReasonNoPowerCurve      = "NO_POWER_CURVE"
	ReasonMaxPower          = "MAX_POWER"
)

// Sentinels for errors.Is. Never mutate them; the engine returns fresh
// errors carrying the same code and reason.
var (
	ErrInvalidLevel      = errors.OutOfRange("level outside stage range").WithReason(ReasonInvalidLevel)
	ErrLevelCapExceeded  = errors.OutOfRange("level cap exceeded").WithReason(ReasonLevelCapExceeded)
	ErrAlreadyMaxed      = errors.FailedPrecondition("item is at its final stage").WithReason(ReasonAlreadyMaxed)
	ErrNotFullyLeveled   = errors.FailedPrecondition("stage not fully leveled").WithReason(ReasonNotFullyLeveled)
	ErrTierNotFound      = errors.NotFound("tier not in chain").WithReason(ReasonTierNotFound)
	ErrMalformedChain    = errors.InvalidArgument("malformed stage chain").WithReason(ReasonMalformedChain)
	ErrInvalidDefinition = errors.InvalidArgument("invalid item definition").WithReason(ReasonInvalidDefinition)
	ErrInvalidPower      = errors.OutOfRange("power outside stage range").WithReason(ReasonInvalidPower)
	ErrNoPowerCurve      = errors.FailedPrecondition("stage has no power curve").WithReason(ReasonNoPowerCurve)
	ErrMaxPower          = errors.FailedPrecondition("stage already has full power").WithReason(ReasonMaxPower)
)

// failure builds a new error with the code and reason of kind
func failure(kind *errors.Error, format string, args ...interface{}) *errors.Error {
	return &errors.Error{
		Code:    kind.Code,
		Reason:  kind.Reason,
		Message: fmt.Sprintf(format, args...),
	}
}
