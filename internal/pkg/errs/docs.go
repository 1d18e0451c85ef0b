// Package errs provides the error types shared by every layer of the order service.
//
// Two families live here:
//   - field errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError) that describe a single bad parameter and unwrap to a sentinel;
//   - coded errors (*Error) that carry a Kind and a stable machine-readable Code.
//
// KindOf classifies any error, including field errors and context cancellation,
// so adapters can map failures to HTTP statuses or queue acknowledgements without
// knowing the concrete type.
package errs
