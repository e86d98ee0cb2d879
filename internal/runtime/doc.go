// Package runtime holds the rendering pipeline of the text operation:
// scope guard, config decoding, context building, template normalization,
// rendering and payload shaping.
package runtime
