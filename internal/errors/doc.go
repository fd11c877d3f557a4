// Package errors provides structured errors for the arsenal service.
//
// An Error carries a Code (how callers should react), an optional Reason
// (which rule was broken), a message and metadata.
//
// # Basic Usage
//
//	err := errors.NotFoundf("item %d not found", id).WithMeta("pack", key)
//
// Sentinels that share a code are told apart by reason:
//
//	var ErrAlreadyMaxed = errors.FailedPrecondition("item at final tier").
//	    WithReason("ALREADY_MAXED")
//
//	if errors.Is(err, ErrAlreadyMaxed) {
//	    // only matches FAILED_PRECONDITION errors with that reason
//	}
//
// Wrapping keeps the code and reason of the cause:
//
//	if err := inst.Transform(); err != nil {
//	    return errors.Wrap(err, "failed to transform item")
//	}
//
// # gRPC Integration
//
// ToGRPCError maps the code onto a gRPC status and ships the reason and
// metadata as a google.rpc.ErrorInfo detail. FromGRPCError reverses it.
//
// # Layer-Specific Guidelines
//
// Engine layer:
//   - Return reason-tagged sentinels from progression
//
// Repository layer:
//   - Return NotFound / AlreadyExists with ids in metadata
//   - Wrap storage errors with context
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Pass engine errors through so callers can match them
//
// Handler layer:
//   - Convert errors to gRPC format
package errors
