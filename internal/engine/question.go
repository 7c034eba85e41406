package engine

import (
	"slices"

	"github.com/kode4food/flagstaff/pkg/api"
)

// question is one pending "ask and wait". Questions are shown one at a
// time in the order they were asked
type question struct {
	runID    api.RunID
	text     string
	chain    *Chain
	sprite   Handle
	shown    bool
	answered bool
}

// Ask queues a question from the chain and returns a Waiter that is ready
// once the question has been answered
func (e *Engine) Ask(s *Sprite, ch *Chain, text string) Waiter {
	q := &question{
		text:   text,
		sprite: s.handle,
		chain:  ch,
		runID:  ch.runID,
	}
	e.questions = append(e.questions, q)
	e.showQuestion()
	return WaiterFunc(func() bool {
		return q.answered
	})
}

// Answer answers the question currently shown, making the text available
// to the answer reporter
func (e *Engine) Answer(text string) {
	e.showQuestion()
	if len(e.questions) == 0 {
		return
	}
	q := e.questions[0]
	e.questions = e.questions[1:]
	q.answered = true
	e.answer = text
	if s := e.world.Get(q.sprite); s != nil && s.Bubble.Text == q.text {
		s.Say(api.BubbleSay, "")
	}
	e.showQuestion()
}

// Question returns the text of the question awaiting an answer
func (e *Engine) Question() (string, bool) {
	e.showQuestion()
	if len(e.questions) == 0 {
		return "", false
	}
	return e.questions[0].text, true
}

// LastAnswer returns the most recent answer
func (e *Engine) LastAnswer() string {
	return e.answer
}

func (e *Engine) showQuestion() {
	for len(e.questions) > 0 {
		q := e.questions[0]
		s := e.world.Get(q.sprite)
		if s == nil || !q.chain.active || q.chain.runID != q.runID {
			e.questions = e.questions[1:]
			continue
		}
		if q.shown {
			return
		}
		q.shown = true
		if s.Visible && !s.IsStage {
			s.Say(api.BubbleSay, q.text)
		}
		e.publish(&api.Event{
			Type:   api.EventTypeAsk,
			Sprite: s.Name,
			Data:   map[string]any{"question": q.text},
		})
		return
	}
}

func (e *Engine) dropQuestions(h Handle) {
	e.questions = slices.DeleteFunc(e.questions, func(q *question) bool {
		return q.sprite == h
	})
}
