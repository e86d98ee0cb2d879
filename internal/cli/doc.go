// Package cli holds the command implementations behind cmd/templates:
// component construction from flags, invocation loading and result output.
package cli
