/*
Package domain contains the core data model of the templates component.

It defines the invocation received from the host pipeline, the message envelope
and its scope identifiers, the template configuration, and the fixed result
envelope returned for every invocation. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Invocation: One request to render a template (config, msg, payload, state, node id).
  - MessageEnvelope: The channel message, carrying the tenant/environment/session scope.
  - TemplateConfig: The template text plus output shaping and routing options.
  - ComponentResult: The envelope returned to the host ({payload, state_updates, control, error}).
  - Capabilities: Feature flags selecting which context sources a pipeline version supports.
*/
package domain
