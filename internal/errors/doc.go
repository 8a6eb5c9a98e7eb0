// Package errors provides the structured error type used by the service
// layers of the tower defense server.
//
// The simulation core does not return errors for player misuse: slot moves
// with bad indexes are no-ops and a full inventory is reported through a
// result value. Errors from this package appear where the core meets the
// outside world: configuration, persistence, match lookup and transport.
//
// # Basic Usage
//
//	err := errors.NotFoundf("match %s not found", matchID)
//	err := errors.InvalidArgument("speed multiplier not allowed").
//	    WithMeta("speed", speed)
//
// Wrapping keeps the code of an existing *Error:
//
//	if _, err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load inventory")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("starting_lives", cfg.StartingLives, 1, 1000, vb)
//	errors.ValidateProbability("drop_chance.boss", cfg.DropChance.Boss, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Transport
//
// Handlers return errors.ToGRPCError(err); metadata is attached to the
// status as a google.protobuf.Struct detail and restored by FromGRPCError.
// The snapshot feed uses Code.HTTPStatus to answer rejected upgrades.
package errors
