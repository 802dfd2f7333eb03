package model

import (
	"encoding/json"
	"fmt"
)

// Flashcard is one card of a generated deck. Image is set per-card only for
// the first few cards when image augmentation is requested.
type Flashcard struct {
	ID         interface{} `json:"id,omitempty"`
	Front      string      `json:"front"`
	Back       string      `json:"back"`
	Difficulty string      `json:"difficulty,omitempty"`
	Image      string      `json:"image,omitempty"`
}

// FlashcardDeck is a generated flashcard deck definition.
type FlashcardDeck struct {
	Title string      `json:"title"`
	Cards []Flashcard `json:"cards"`
	Image string      `json:"image,omitempty"`
}

// ParseFlashcardDeck builds a FlashcardDeck from raw model output. Returns
// ErrMalformed if the payload is not JSON or has no cards array.
func ParseFlashcardDeck(raw string) (*FlashcardDeck, error) {
	var deck FlashcardDeck
	if err := json.Unmarshal([]byte(CleanModelResponse(raw)), &deck); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(deck.Cards) == 0 {
		return nil, fmt.Errorf("%w: flashcard deck has no cards", ErrMalformed)
	}
	return &deck, nil
}
