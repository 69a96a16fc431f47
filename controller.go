package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const defaultSettleDelay = 300 * time.Millisecond

type State string

const (
	StateEmpty         State = "empty"
	StateBrowsing      State = "browsing"
	StateTransitioning State = "transitioning"
	StateComplete      State = "complete"
)

type Direction string

const (
	DirectionNone     Direction = ""
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// transition is the navigation lock. It is held while direction is set and
// settles once the clock reaches until.
type transition struct {
	direction Direction
	until     time.Time
}

func (t transition) held() bool { return t.direction != DirectionNone }

// Controller owns one review session over a deck. All mutation goes through
// its methods; every method settles an expired transition before acting, so
// the lock releases on the first observation after the delay.
type Controller struct {
	mu sync.Mutex

	cards       []Flashcard
	index       int
	flips       map[string]bool
	assessments map[string]Assessment
	lock        transition
	complete    bool
	view        *CardView

	clock       clockwork.Clock
	settleDelay time.Duration
	notifier    Notifier
	onPanic     func(v any)
}

type ControllerOption func(*Controller)

func WithClock(clock clockwork.Clock) ControllerOption {
	return func(c *Controller) { c.clock = clock }
}

func WithSettleDelay(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d >= 0 {
			c.settleDelay = d
		}
	}
}

func WithNotifier(n Notifier) ControllerOption {
	return func(c *Controller) { c.notifier = n }
}

// WithPanicHandler receives whatever a notifier panicked with.
func WithPanicHandler(fn func(v any)) ControllerOption {
	return func(c *Controller) { c.onPanic = fn }
}

// NewController presents cards and emits the deck-loaded notice.
func NewController(cards []Flashcard, opts ...ControllerOption) *Controller {
	c := &Controller{
		cards:       append([]Flashcard(nil), cards...),
		flips:       map[string]bool{},
		assessments: map[string]Assessment{},
		clock:       clockwork.NewRealClock(),
		settleDelay: defaultSettleDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.mountView()
	c.emit(deckLoadedNotice(len(c.cards)))
	return c
}

// Previous steps back one card. It is a no-op on the first card, while a
// transition is in flight, or once the session is complete.
func (c *Controller) Previous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	return c.navigate(DirectionBackward)
}

// Next steps forward one card under the same rules as Previous.
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	return c.navigate(DirectionForward)
}

// RecordFlip stores the flip value for a card id.
func (c *Controller) RecordFlip(cardID string, flipped bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	c.recordFlip(cardID, flipped)
}

// Flip toggles the mounted card view, which records the flip back here.
func (c *Controller) Flip() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	if c.view == nil || c.complete {
		return false
	}
	c.view.Toggle()
	return true
}

// Assess grades a card and auto-advances unless it is the last one. Ids
// outside the deck are ignored so counts stay bounded by the deck size.
func (c *Controller) Assess(cardID string, isCorrect bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	return c.assess(cardID, isCorrect)
}

// AssessCurrent grades whichever card is mounted.
func (c *Controller) AssessCurrent(isCorrect bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	if c.view == nil {
		return false
	}
	return c.assess(c.view.card.ID, isCorrect)
}

// Reset discards all session progress and returns to the first card.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flips = map[string]bool{}
	c.assessments = map[string]Assessment{}
	c.index = 0
	c.lock = transition{}
	c.complete = false
	c.mountView()
}

// HandleKey maps a keyboard key to an operation. Keys are ignored without
// a current card or while results are shown.
func (c *Controller) HandleKey(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	if c.view == nil || c.complete {
		return false
	}
	switch commandForKey(key) {
	case cmdPrevious:
		return c.navigate(DirectionBackward)
	case cmdNext:
		return c.navigate(DirectionForward)
	case cmdFlip:
		c.view.Toggle()
		return true
	case cmdCorrect:
		return c.assess(c.view.card.ID, true)
	case cmdIncorrect:
		return c.assess(c.view.card.ID, false)
	default:
		return false
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	return c.state()
}

// Results returns the summary presentation once the session is complete.
func (c *Controller) Results() (*Results, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()
	if !c.complete {
		return nil, false
	}
	return &Results{Summary: BuildSummary(c.cards, c.assessments), ctrl: c}, true
}

// Snapshot is a consistent read of the whole session.
type Snapshot struct {
	State       State         `json:"state"`
	Index       int           `json:"index"`
	Position    int           `json:"position"`
	Total       int           `json:"total"`
	Direction   Direction     `json:"direction,omitempty"`
	CanPrevious bool          `json:"canPrevious"`
	CanNext     bool          `json:"canNext"`
	Card        *CardSnapshot `json:"card,omitempty"`
	Reviewed    int           `json:"reviewed"`
	Counter     string        `json:"counter"`
	Progress    ProgressBar   `json:"progress"`
	Correct     int           `json:"correct"`
	Incorrect   int           `json:"incorrect"`
	Assessed    int           `json:"assessed"`
	Score       int           `json:"score"`
	Results     *Summary      `json:"results,omitempty"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle()

	total := len(c.cards)
	correct, incorrect := tallyAssessments(c.assessments)
	s := Snapshot{
		State:     c.state(),
		Total:     total,
		Direction: c.lock.direction,
		Reviewed:  len(c.flips),
		Counter:   fmt.Sprintf("%d of %d cards reviewed", len(c.flips), total),
		Progress:  RenderProgress(computeProgress(len(c.flips), total)),
		Correct:   correct,
		Incorrect: incorrect,
		Assessed:  correct + incorrect,
		Score:     computeScore(correct, incorrect),
	}
	if c.view != nil {
		card := c.view.Snapshot()
		s.Card = &card
		s.Index = c.index
		s.Position = c.index + 1
		s.CanPrevious = c.index > 0
		s.CanNext = c.index < total-1
	}
	if c.complete {
		summary := BuildSummary(c.cards, c.assessments)
		s.Results = &summary
	}
	return s
}

// --- internals, caller holds mu ---

func (c *Controller) state() State {
	switch {
	case len(c.cards) == 0:
		return StateEmpty
	case c.complete:
		return StateComplete
	case c.lock.held():
		return StateTransitioning
	default:
		return StateBrowsing
	}
}

func (c *Controller) navigate(dir Direction) bool {
	if len(c.cards) == 0 || c.complete || c.lock.held() {
		return false
	}
	switch dir {
	case DirectionBackward:
		if c.index == 0 {
			return false
		}
	case DirectionForward:
		if c.index >= len(c.cards)-1 {
			return false
		}
	default:
		return false
	}
	c.lock = transition{direction: dir, until: c.clock.Now().Add(c.settleDelay)}
	c.settle()
	return true
}

func (c *Controller) settle() {
	if !c.lock.held() || c.clock.Now().Before(c.lock.until) {
		return
	}
	switch c.lock.direction {
	case DirectionBackward:
		if c.index > 0 {
			c.index--
		}
	case DirectionForward:
		if c.index < len(c.cards)-1 {
			c.index++
		}
	}
	c.lock = transition{}
	c.mountView()
}

func (c *Controller) mountView() {
	if len(c.cards) == 0 {
		c.view = nil
		return
	}
	c.view = newCardView(c.cards[c.index], c.recordFlip)
}

func (c *Controller) recordFlip(cardID string, flipped bool) {
	c.flips[cardID] = flipped
}

func (c *Controller) assess(cardID string, isCorrect bool) bool {
	if c.view == nil || c.complete {
		return false
	}
	pos := c.indexOf(cardID)
	if pos < 0 {
		return false
	}
	a := assessmentOf(isCorrect)
	c.assessments[cardID] = a
	c.emit(assessedNotice(cardID, a))

	if pos < len(c.cards)-1 {
		c.navigate(DirectionForward)
	}
	c.checkComplete()
	return true
}

func (c *Controller) checkComplete() {
	if c.complete {
		return
	}
	correct, incorrect := tallyAssessments(c.assessments)
	if !isSessionComplete(correct+incorrect, len(c.cards)) {
		return
	}
	c.complete = true
	c.emit(completedNotice(computeScore(correct, incorrect)))
}

func (c *Controller) indexOf(cardID string) int {
	for i, card := range c.cards {
		if card.ID == cardID {
			return i
		}
	}
	return -1
}

// emit delivers a notice without letting the notifier disturb the session.
func (c *Controller) emit(n Notice) {
	if c.notifier == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && c.onPanic != nil {
			c.onPanic(r)
		}
	}()
	c.notifier.Notify(n)
}
