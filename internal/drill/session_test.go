package drill

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/music"
)

type recordedSubmission struct {
	prompt    types.IntervalPrompt
	answer    types.Answer
	isCorrect bool
	latencyMs int
}

type fakeSubmitter struct {
	mu      sync.Mutex
	records []recordedSubmission
}

func (f *fakeSubmitter) Submit(prompt types.IntervalPrompt, answer types.Answer, isCorrect bool, latencyMs int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, recordedSubmission{prompt, answer, isCorrect, latencyMs})
}

func (f *fakeSubmitter) all() []recordedSubmission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedSubmission{}, f.records...)
}

// timerQueue replaces time.AfterFunc so tests drive deferred transitions
// deterministically.
type timerQueue struct {
	mu     sync.Mutex
	fns    []func()
	delays []time.Duration
}

func (q *timerQueue) afterFunc(d time.Duration, f func()) *time.Timer {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.fns = append(q.fns, f)
	q.delays = append(q.delays, d)
	return time.NewTimer(time.Hour)
}

func (q *timerQueue) lastDelay() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.delays[len(q.delays)-1]
}

func (q *timerQueue) fire() {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()
	for _, f := range fns {
		f()
	}
}

func newTestSession(planned int) (*Session, *fakeSubmitter, *timerQueue) {
	submitter := &fakeSubmitter{}
	timers := &timerQueue{}
	s := NewSession("sess-test", "intervals", planned, NewGenerator(Options{}, rand.New(rand.NewSource(99))), submitter)
	s.afterFunc = timers.afterFunc
	return s, submitter, timers
}

func (s *Session) currentCorrectLabel(t *testing.T) music.Label {
	s.mu.Lock()
	defer s.mu.Unlock()
	iv, err := music.ParseInterval(s.prompt.Interval)
	require.NoError(t, err)
	label, ok := music.LabelFor(iv)
	require.True(t, ok)
	return label
}

func (s *Session) currentWrongLabel(t *testing.T) music.Label {
	correct := s.currentCorrectLabel(t)
	for _, label := range music.Labels {
		if label != correct {
			return label
		}
	}
	t.Fatal("no wrong label available")
	return ""
}

func TestSessionRunToReview(t *testing.T) {
	s, submitter, timers := newTestSession(5)

	view, err := s.Start()
	require.NoError(t, err)
	assert.Equal(t, PhaseRunning, view.Phase)
	require.NotNil(t, view.Question)
	assert.Equal(t, 1, view.Question.Number)
	assert.NotNil(t, view.Plan)

	for i := 0; i < 5; i++ {
		view, err = s.Answer(s.currentCorrectLabel(t), 800)
		require.NoError(t, err)
		assert.Equal(t, FeedbackCorrect, view.Feedback)
		assert.True(t, view.InteractionLock)
		timers.fire()
	}

	view = s.View()
	assert.Equal(t, PhaseReview, view.Phase)
	assert.Equal(t, 5, view.CompletedCount)
	assert.Equal(t, 5, view.CorrectCount)
	assert.Equal(t, 100, view.Accuracy)
	assert.Nil(t, view.Question)

	records := submitter.all()
	require.Len(t, records, 5)
	for _, record := range records {
		assert.True(t, record.isCorrect)
		assert.True(t, record.answer.Selection.Valid)
	}
}

func TestSessionIncorrectAnswerIsRetryable(t *testing.T) {
	s, submitter, timers := newTestSession(2)

	_, err := s.Start()
	require.NoError(t, err)

	view, err := s.Answer(s.currentWrongLabel(t), 500)
	require.NoError(t, err)
	assert.Equal(t, FeedbackIncorrect, view.Feedback)
	assert.Equal(t, 0, view.CompletedCount)
	require.NotNil(t, view.Question)
	assert.Equal(t, 1, view.Question.Number)

	// feedback clears, same question stays open
	timers.fire()
	view = s.View()
	assert.Empty(t, view.Feedback)
	assert.False(t, view.InteractionLock)
	assert.Equal(t, 1, view.Question.Number)

	view, err = s.Answer(s.currentCorrectLabel(t), 700)
	require.NoError(t, err)
	assert.Equal(t, 1, view.CompletedCount)
	assert.Equal(t, 1, view.CorrectCount)
	timers.fire()

	// one retry means two submissions for one consumed slot
	records := submitter.all()
	require.Len(t, records, 2)
	assert.False(t, records[0].isCorrect)
	assert.True(t, records[1].isCorrect)
	assert.Equal(t, records[0].prompt, records[1].prompt)
}

func TestSessionSkipConsumesSlot(t *testing.T) {
	s, submitter, timers := newTestSession(2)

	_, err := s.Start()
	require.NoError(t, err)

	view, err := s.Skip()
	require.NoError(t, err)
	assert.Equal(t, FeedbackSkipped, view.Feedback)
	assert.Equal(t, 1, view.CompletedCount)
	assert.Equal(t, 0, view.CorrectCount)

	timers.fire()
	view = s.View()
	assert.Equal(t, 2, view.Question.Number)

	records := submitter.all()
	require.Len(t, records, 1)
	assert.False(t, records[0].isCorrect)
	assert.True(t, records[0].answer.Skipped)
}

func TestSessionRevealShowsAnswerAndConsumesSlot(t *testing.T) {
	s, submitter, timers := newTestSession(1)

	_, err := s.Start()
	require.NoError(t, err)

	expected := s.currentCorrectLabel(t)
	view, err := s.Reveal()
	require.NoError(t, err)
	assert.Equal(t, FeedbackRevealed, view.Feedback)
	assert.Equal(t, expected, view.RevealedLabel)
	assert.Equal(t, 1, view.CompletedCount)

	timers.fire()
	assert.Equal(t, PhaseReview, s.View().Phase)

	records := submitter.all()
	require.Len(t, records, 1)
	assert.False(t, records[0].isCorrect)
	assert.True(t, records[0].answer.Revealed)
}

func TestSessionRejectsInteractionWhileLocked(t *testing.T) {
	s, _, timers := newTestSession(3)

	_, err := s.Start()
	require.NoError(t, err)

	_, err = s.Skip()
	require.NoError(t, err)

	_, err = s.Answer(music.LabelMinorThird, 100)
	assert.ErrorIs(t, err, ErrSessionLocked)
	_, err = s.Skip()
	assert.ErrorIs(t, err, ErrSessionLocked)
	_, err = s.Reveal()
	assert.ErrorIs(t, err, ErrSessionLocked)

	timers.fire()
	_, err = s.Replay(ReplayFull)
	assert.NoError(t, err)
}

func TestSessionReplayScopes(t *testing.T) {
	s, _, _ := newTestSession(3)

	_, err := s.Start()
	require.NoError(t, err)

	full, err := s.Replay(ReplayFull)
	require.NoError(t, err)
	require.NotNil(t, full.Plan)

	tonal, err := s.Replay(ReplayContext)
	require.NoError(t, err)
	require.NotNil(t, tonal.Plan)

	interval, err := s.Replay(ReplayInterval)
	require.NoError(t, err)
	require.NotNil(t, interval.Plan)

	// context and interval are strict subsets of the full question plan
	assert.Len(t, full.Plan.Events, len(tonal.Plan.Events)+len(interval.Plan.Events))
	assert.Less(t, tonal.Plan.End(), full.Plan.End())
	assert.Less(t, interval.Plan.End(), full.Plan.End())
}

func TestSessionFeedbackDelays(t *testing.T) {
	s, _, timers := newTestSession(4)

	_, err := s.Start()
	require.NoError(t, err)

	// answer feedback clears after the same pause for both outcomes
	_, err = s.Answer(s.currentWrongLabel(t), 300)
	require.NoError(t, err)
	assert.Equal(t, 1200*time.Millisecond, timers.lastDelay())
	timers.fire()

	_, err = s.Answer(s.currentCorrectLabel(t), 300)
	require.NoError(t, err)
	assert.Equal(t, 1200*time.Millisecond, timers.lastDelay())
	timers.fire()

	_, err = s.Skip()
	require.NoError(t, err)
	assert.Equal(t, 800*time.Millisecond, timers.lastDelay())
	timers.fire()

	_, err = s.Reveal()
	require.NoError(t, err)
	assert.Equal(t, 1400*time.Millisecond, timers.lastDelay())
}

func TestSessionStaleTimerDoesNothingAfterClose(t *testing.T) {
	s, _, timers := newTestSession(3)

	_, err := s.Start()
	require.NoError(t, err)
	_, err = s.Skip()
	require.NoError(t, err)

	s.Close()
	timers.fire()

	view := s.View()
	assert.Equal(t, 1, view.CompletedCount)
	assert.Equal(t, PhaseRunning, view.Phase)

	_, err = s.Skip()
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSessionStartTwiceRejected(t *testing.T) {
	s, _, _ := newTestSession(3)

	_, err := s.Start()
	require.NoError(t, err)
	_, err = s.Start()
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestSessionViewNeverLeaksInterval(t *testing.T) {
	s, _, timers := newTestSession(3)

	view, err := s.Start()
	require.NoError(t, err)

	// the question block carries key, mode and direction only; the interval
	// under test must come through the ear
	require.NotNil(t, view.Question)
	assert.NotEmpty(t, view.Question.Key)
	assert.NotEmpty(t, view.Question.Mode)
	assert.NotEmpty(t, view.Question.Direction)

	_, err = s.Skip()
	require.NoError(t, err)
	timers.fire()

	view = s.View()
	require.NotNil(t, view.Question)
	assert.NotEmpty(t, view.Question.Key)
}
