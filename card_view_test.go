package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardViewToggleReportsEachFlip(t *testing.T) {
	type flip struct {
		id      string
		flipped bool
	}
	var got []flip
	v := newCardView(Flashcard{ID: "7", Question: "Q", Answer: "A"}, func(id string, flipped bool) {
		got = append(got, flip{id, flipped})
	})

	assert.False(t, v.Flipped())
	v.Toggle()
	assert.True(t, v.Flipped())
	v.Toggle()
	assert.False(t, v.Flipped())
	assert.Equal(t, []flip{{"7", true}, {"7", false}}, got)
}

func TestCardViewFormatsEachSide(t *testing.T) {
	v := newCardView(Flashcard{
		ID:       "1",
		Question: "What prints?",
		Answer:   "```go\nfmt.Println(\"hi\")\n```",
	}, nil)

	snap := v.Snapshot()
	assert.False(t, snap.Question.HasCode)
	assert.True(t, snap.Answer.HasCode)
	assert.Equal(t, []Segment{{Kind: CodeBlock, Lang: "go", Text: "fmt.Println(\"hi\")\n"}}, snap.Answer.Segments)
}
