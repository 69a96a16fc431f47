package main

// CardView is one mounted presentation of a card. Its flipped flag starts
// false on every mount, independent of what the session has recorded for
// the card.
type CardView struct {
	card    Flashcard
	flipped bool
	onFlip  func(id string, flipped bool)
}

func newCardView(card Flashcard, onFlip func(id string, flipped bool)) *CardView {
	return &CardView{card: card, onFlip: onFlip}
}

// Toggle flips the card and reports the new value to the owner.
func (v *CardView) Toggle() {
	v.flipped = !v.flipped
	if v.onFlip != nil {
		v.onFlip(v.card.ID, v.flipped)
	}
}

func (v *CardView) Flipped() bool { return v.flipped }

func (v *CardView) Card() Flashcard { return v.card }

func (v *CardView) Question() Content { return FormatContent(v.card.Question) }

func (v *CardView) Answer() Content { return FormatContent(v.card.Answer) }

// CardSnapshot is the rendered card as sent to clients.
type CardSnapshot struct {
	ID       string  `json:"id"`
	Flipped  bool    `json:"flipped"`
	Question Content `json:"question"`
	Answer   Content `json:"answer"`
}

func (v *CardView) Snapshot() CardSnapshot {
	return CardSnapshot{
		ID:       v.card.ID,
		Flipped:  v.flipped,
		Question: v.Question(),
		Answer:   v.Answer(),
	}
}
