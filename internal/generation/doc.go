// Package generation defines the boundary to the external AI service
// that turns photographed text into flashcard material.
//
// The interface keeps the application core independent of any concrete
// LLM provider. Failures here only ever prevent new cards from being
// created; they can never corrupt collection state.
package generation
