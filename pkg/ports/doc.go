/*
Package ports defines the driven ports (interfaces) of the templates component.

These interfaces decouple the orchestrator from external implementations, allowing
the same core to run with different template engines, state backends and hosts.

# Key Interfaces

  - TemplateEngine: Expands a template string against a context (e.g., Handlebars).
  - StateStore: Holds host-side prior state keyed by tenant/environment/session scope.
  - Invoker: The orchestrator entry point consumed by adapters (HTTP, MCP, stdio).
*/
package ports
