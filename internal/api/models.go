package api

import (
	"github.com/photodeck/photodeck/internal/domain"
	"github.com/photodeck/photodeck/internal/study"
)

// StudySessionResponse is the wire representation of a study session
// snapshot. The card's back text is withheld until the answer has been
// revealed.
type StudySessionResponse struct {
	Phase    string       `json:"phase"`
	Card     *domain.Card `json:"card,omitempty"`
	Revealed bool         `json:"revealed"`
	Position int          `json:"position"`
	DeckSize int          `json:"deckSize"`
	Progress float64      `json:"progress"`
}

func toStudySessionResponse(v study.View) StudySessionResponse {
	resp := StudySessionResponse{
		Phase:    string(v.Phase),
		Revealed: v.Revealed,
		Position: v.Position,
		DeckSize: v.DeckSize,
		Progress: v.Progress,
	}

	if v.Card != nil {
		card := v.Card.Clone()
		if !v.Revealed {
			card.Back = ""
		}
		resp.Card = &card
	}

	return resp
}
