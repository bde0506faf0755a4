/*
Package errors implements the error kinds used by trust.

Reuse the kinds declared in this package whenever possible and declare a
package specific kind only when none of them describes the failure. Custom
kinds are declared with Register(code, description); x/escrow declares its
own funding and voting kinds this way.

Every error returned at runtime should wrap one of the registered kinds.
Create them with ErrXyz.New("...") or errors.Wrap(err, "...") at the point of
failure so that a stack trace is attached. Only the innermost wrap records the
stack.

Formatting:
	%s is just the error message
	%+v is the message followed by the full stack trace
	%v is the same as %s

Use ErrXyz.Is(err) to test the kind of an error. ABCIInfo maps an error to
the code and log returned to a client.
*/
package errors
