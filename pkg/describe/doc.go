/*
Package describe publishes the self-description of the templates component.

It builds the structural schemas of the text operation (input, output, config)
with kin-openapi, derives a stable schema hash, and assembles the identity and
describe records hosts use to discover the component. The config schema is also
the structural validator the orchestrator applies before decoding a config.
*/
package describe
