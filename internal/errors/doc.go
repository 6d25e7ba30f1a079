// Package errors provides error handling conventions for the sr CLI.
//
// It defines sentinel errors for common failure conditions, an ExitError
// type carrying an exit code and an optional user-facing suggestion, and
// exit code constants following Unix conventions:
//
//   - ExitSuccess (0): command completed successfully
//   - ExitUser (1): user-related error (invalid input, configuration)
//   - ExitSystem (2): system-related error (I/O, network, permissions)
//
// Callers check for specific conditions with [errors.Is]:
//
//	if errors.Is(err, srerrors.ErrConfigNotFound) {
//	    // prompt the user to run sr init
//	}
//
// The root command unwraps ExitError with [errors.As] to pick the process
// exit code and print the suggestion.
package errors
