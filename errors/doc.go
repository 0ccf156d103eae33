/*
Package errors implements custom error interfaces for the ledger.

The idea is to reuse as many errors from this package as possible and define
custom package errors when absolutely necessary.

Four root errors form the taxonomy clients branch on:

	ErrUnauthorized        caller lacks the required role or ownership
	ErrState               paused, already signed, missing or duplicate record
	ErrInput               zero price, arity mismatch, zero address, bad flag
	ErrInsufficientAmount  balance or allowance short

Extensions declare reason errors refined from a root, each with a unique
code, for example

	ErrPaused = errors.ErrState.Register(1101, "paused")

so that both errors.ErrState.Is(err) and ErrPaused.Is(err) can be tested.
Code ranges: 1-99 this package, 1000 x/roles, 1100 x/passport,
1200 x/badge, 1300 x/auction, 1400 x/sale, 1500 x/token.

There is also support for stacktraces. Please ensure you create the custom
error using ErrXyz.New("...") or errors.Wrap(err, "...") at the point of
creation to ensure we attach a stacktrace.

	%s is just the error message
	%+v is the full stack trace
*/
package errors
