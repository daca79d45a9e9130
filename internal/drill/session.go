package drill

import (
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/tonedrill/backend/internal/audio"
	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/music"
)

// Session phases.
const (
	PhaseIdle    = "idle"
	PhaseRunning = "running"
	PhaseReview  = "review"
)

// Replay scopes: the whole question, the tonal context alone, or the
// interval alone.
const (
	ReplayFull     = "full"
	ReplayContext  = "context"
	ReplayInterval = "interval"
)

// Feedback markers shown between a terminal action and the next question.
const (
	FeedbackCorrect   = "correct"
	FeedbackIncorrect = "incorrect"
	FeedbackSkipped   = "skipped"
	FeedbackRevealed  = "revealed"
)

// Feedback and pacing delays. Answer feedback clears after the same pause
// whether the pick was right or wrong; revealed lingers longer since there
// is a label to read, and skip moves on quickest.
const (
	advanceAfterCorrect  = 1200 * time.Millisecond
	clearAfterIncorrect  = 1200 * time.Millisecond
	advanceAfterSkip     = 800 * time.Millisecond
	advanceAfterRevealed = 1400 * time.Millisecond
)

var (
	ErrSessionNotRunning = errors.New("drill: session is not running")
	ErrSessionLocked     = errors.New("drill: session is busy with playback or feedback")
	ErrSessionClosed     = errors.New("drill: session is closed")
	ErrAlreadyStarted    = errors.New("drill: session has already been started")
)

// Submitter receives one record per consumed question slot, plus one record
// per incorrect retry. Called synchronously under the session lock so
// records are emitted in the order the actions happened.
type Submitter interface {
	Submit(prompt types.IntervalPrompt, answer types.Answer, isCorrect bool, latencyMs int)
}

// Session is one user's practice run: a fixed number of question slots,
// advanced one at a time through answer, skip or reveal. All methods are
// safe for concurrent use.
//
// Deferred transitions (clearing feedback, advancing to the next question)
// run on timers. Every state mutation bumps a generation counter and each
// timer captures the generation it was scheduled under, so a timer that
// fires after the state already moved on silently does nothing.
type Session struct {
	mu sync.Mutex

	id        string
	drillID   string
	planned   int
	gen       *Generator
	submitter Submitter

	phase      string
	completed  int
	correct    int
	questionNo int
	prompt     types.IntervalPrompt
	feedback   string
	revealed   music.Label
	locked     bool
	closed     bool

	generation uint64
	timer      *time.Timer
	plan       *audio.Plan

	// afterFunc is time.AfterFunc unless a test swaps it out.
	afterFunc func(d time.Duration, f func()) *time.Timer
}

func NewSession(id, drillID string, planned int, gen *Generator, submitter Submitter) *Session {
	return &Session{
		id:        id,
		drillID:   drillID,
		planned:   planned,
		gen:       gen,
		submitter: submitter,
		phase:     PhaseIdle,
		afterFunc: time.AfterFunc,
	}
}

// Start moves the session from idle to running and poses the first question.
func (s *Session) Start() (types.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.SessionView{}, ErrSessionClosed
	}
	if s.phase != PhaseIdle {
		return types.SessionView{}, ErrAlreadyStarted
	}

	s.phase = PhaseRunning
	s.nextQuestionLocked()
	return s.viewLocked(), nil
}

// Answer evaluates the picked label against the current question. A correct
// answer consumes the slot and schedules the advance; an incorrect answer
// leaves the slot open for a retry after the feedback clears. Both emit a
// submission record.
func (s *Session) Answer(selection music.Label, latencyMs int) (types.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.interactableLocked(); err != nil {
		return types.SessionView{}, err
	}

	isCorrect := Evaluate(s.prompt, selection)
	s.submitter.Submit(s.prompt, types.SelectedAnswer(selection), isCorrect, latencyMs)

	if isCorrect {
		s.correct++
		s.completed++
		s.feedback = FeedbackCorrect
		s.locked = true
		s.scheduleLocked(advanceAfterCorrect, s.advance)
	} else {
		s.feedback = FeedbackIncorrect
		s.locked = true
		s.scheduleLocked(clearAfterIncorrect, s.clearFeedback)
	}

	return s.viewLocked(), nil
}

// Skip consumes the current slot as incorrect without exposing the answer.
func (s *Session) Skip() (types.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.interactableLocked(); err != nil {
		return types.SessionView{}, err
	}

	s.submitter.Submit(s.prompt, types.SkippedAnswer(), false, 0)

	s.completed++
	s.feedback = FeedbackSkipped
	s.locked = true
	s.scheduleLocked(advanceAfterSkip, s.advance)

	return s.viewLocked(), nil
}

// Reveal consumes the current slot as incorrect and shows the answer label.
func (s *Session) Reveal() (types.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.interactableLocked(); err != nil {
		return types.SessionView{}, err
	}

	s.submitter.Submit(s.prompt, types.RevealedAnswer(), false, 0)

	iv, _ := music.ParseInterval(s.prompt.Interval)
	s.revealed, _ = music.LabelFor(iv)

	s.completed++
	s.feedback = FeedbackRevealed
	s.locked = true
	s.scheduleLocked(advanceAfterRevealed, s.advance)

	return s.viewLocked(), nil
}

// Replay rebuilds the playback plan for the current question without
// affecting scoring. Scope narrows the plan to the tonal context alone or
// the interval alone; anything else replays the whole question.
func (s *Session) Replay(scope string) (types.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.interactableLocked(); err != nil {
		return types.SessionView{}, err
	}

	switch scope {
	case ReplayContext:
		plan := audio.ContextPlan(s.prompt.Key)
		s.plan = &plan
	case ReplayInterval:
		if iv, err := music.ParseInterval(s.prompt.Interval); err == nil {
			plan := audio.IntervalPlan(s.prompt.Key, iv, s.prompt.Direction)
			s.plan = &plan
		}
	default:
		s.plan = buildQuestionPlan(s.prompt)
	}

	return s.viewLocked(), nil
}

// View snapshots the client-visible state.
func (s *Session) View() types.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Close cancels any pending transition and renders the session unusable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) interactableLocked() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.phase != PhaseRunning {
		return ErrSessionNotRunning
	}
	if s.locked {
		return ErrSessionLocked
	}
	return nil
}

// scheduleLocked arms a deferred transition bound to the current generation.
func (s *Session) scheduleLocked(d time.Duration, fn func(generation uint64)) {
	s.generation++
	generation := s.generation
	s.timer = s.afterFunc(d, func() {
		fn(generation)
	})
}

// advance moves to the next question, or to review once every slot is
// consumed. No-op when the session moved on since scheduling.
func (s *Session) advance(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || generation != s.generation {
		return
	}

	s.feedback = ""
	s.revealed = ""
	s.locked = false

	if s.completed >= s.planned {
		s.phase = PhaseReview
		s.plan = nil
		return
	}

	s.nextQuestionLocked()
}

// clearFeedback reopens the current question after incorrect feedback.
func (s *Session) clearFeedback(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || generation != s.generation {
		return
	}

	s.feedback = ""
	s.locked = false
}

func (s *Session) nextQuestionLocked() {
	s.prompt = s.gen.Next()
	s.questionNo = s.completed + 1
	s.plan = buildQuestionPlan(s.prompt)
}

func (s *Session) viewLocked() types.SessionView {
	view := types.SessionView{
		SessionID:        s.id,
		DrillID:          s.drillID,
		Phase:            s.phase,
		PlannedQuestions: s.planned,
		CompletedCount:   s.completed,
		CorrectCount:     s.correct,
		Accuracy:         accuracy(s.correct, s.completed),
		Feedback:         s.feedback,
		RevealedLabel:    s.revealed,
		InteractionLock:  s.locked,
		Plan:             s.plan,
	}

	if s.phase == PhaseRunning {
		view.Question = &types.SessionQuestion{
			Number:    s.questionNo,
			Key:       s.prompt.Key,
			Mode:      s.prompt.Mode,
			Direction: s.prompt.Direction,
		}
	}

	return view
}

// buildQuestionPlan lays out one full question playback: tonal context
// first, then the interval after the settle delay.
func buildQuestionPlan(prompt types.IntervalPrompt) *audio.Plan {
	iv, err := music.ParseInterval(prompt.Interval)
	if err != nil {
		return nil
	}

	plan := audio.ContextPlan(prompt.Key)
	settleAt := plan.End() + audio.SettleDelaySeconds
	interval := audio.IntervalPlan(prompt.Key, iv, prompt.Direction)
	for _, event := range interval.Events {
		event.StartOffset += settleAt
		plan.Events = append(plan.Events, event)
	}

	return &plan
}

func accuracy(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
