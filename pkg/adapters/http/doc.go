// Package http exposes the component over HTTP with a chi router.
//
// Routes:
//
//	POST   /invoke/{operation}              run one invocation, JSON in and out
//	POST   /stream/{operation}              same, framed as server-sent events
//	GET    /describe                        self-description
//	GET    /schemas/{kind}                  input, output or config schema
//	GET    /qa/{mode}                       configuration questions
//	POST   /qa/{mode}/answers               merge answers into a config
//	PUT    /state/{tenant}/{env}/{session}  seed prior state for a scope
//	GET    /state/{tenant}/{env}/{session}
//	DELETE /state/{tenant}/{env}/{session}
//	GET    /health
//	GET    /metrics
//
// The /state routes let any caller read or overwrite any scope's state. They
// are meant for trusted hosts: they carry no CORS headers, and WithStateToken
// puts them behind a bearer token.
//
// Top-level invocation failures map to 400 (InvalidInput), 403 (InvalidScope)
// and 404 (UnsupportedOperation). Config and template failures are part of a
// 200 result.
package http
