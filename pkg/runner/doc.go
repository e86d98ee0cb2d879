/*
Package runner frames invocations for hosts that do not call the component in-process.

It bridges a ports.Invoker and the outside world without adding semantics of its own:

  - SanitizeInput guards raw transport bytes (size limit, UTF-8, control characters).
  - Stream wraps one invocation as progress, data and done events (or a single error event).
  - JSONHandler serves JSON-Lines requests from a reader and writes one response line per request.

# Usage

	h := runner.NewJSONHandler(component, os.Stdin, os.Stdout)
	if err := h.Serve(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
