// Package api implements the HTTP handlers for the card collection,
// folders, study sessions, and card generation. Handlers translate
// requests into engine intents or controller calls and map domain
// errors onto HTTP status codes; they hold no state of their own.
package api
