package main

import (
	"context"
	"errors"
)

// Flashcard is read-only once loaded.
type Flashcard struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Deck is a parsed bundle as handed to a session. Cards may be empty.
type Deck struct {
	Key         string      `json:"key"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Cards       []Flashcard `json:"cards"`
}

// DeckMeta is a deck without its cards.
type DeckMeta struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (d *Deck) Meta() DeckMeta {
	return DeckMeta{Key: d.Key, Title: d.Title, Description: d.Description}
}

var ErrDeckNotFound = errors.New("deck not found")

// DeckLoader resolves a topic key to a deck. How the bundle is stored is
// up to the implementation.
type DeckLoader interface {
	LoadDeck(ctx context.Context, key string) (*Deck, error)
}
