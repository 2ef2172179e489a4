// Package domain defines the core entities of the flashcard collection:
// cards, folders, and the validation rules that govern them.
//
// Entities here are plain values with no persistence or transport
// concerns. Serialization to the stored wire format lives in the
// persistence layer; mutation rules live in the engine package.
package domain
