package service

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/tonedrill/backend/internal/audio"
	"github.com/tonedrill/backend/internal/drill"
	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/music"
	"github.com/tonedrill/backend/internal/pkg/apperr"
)

const defaultPlannedQuestions = 10

// Session holds the live practice sessions. Sessions are in-memory and
// instance-local: losing one on restart costs the user a partially played
// run, never recorded attempts, since those are queued per consumed slot.
type Session struct {
	AttemptService *Attempt
	Transport      *audio.Transport

	mu     sync.Mutex
	byID   map[string]*sessionEntry
	byUser map[string]string
}

type sessionEntry struct {
	userID  string
	session *drill.Session
}

func NewSession(attemptService *Attempt, transport *audio.Transport) *Session {
	return &Session{
		AttemptService: attemptService,
		Transport:      transport,
		byID:           make(map[string]*sessionEntry),
		byUser:         make(map[string]string),
	}
}

// StartSession creates, registers and starts a session. A user has at most
// one live session: starting a new one discards the previous.
func (s *Session) StartSession(ctx context.Context, userID string, req *types.StartSessionRequest) (*types.SessionView, error) {
	if err := s.Transport.Ready(ctx); err != nil {
		return nil, apperr.ErrAudioUnavailable
	}

	planned := req.PlannedQuestions
	if planned == 0 {
		planned = defaultPlannedQuestions
	}

	gen := drill.NewGenerator(drill.Options{
		FixedKey:   req.FixedKey,
		Directions: req.Directions,
	}, nil)

	id := xid.New().String()
	session := drill.NewSession(id, req.DrillID, planned, gen, s.AttemptService.SubmitterFor(userID, req.DrillID))

	s.mu.Lock()
	if prevID, ok := s.byUser[userID]; ok {
		if prev, ok := s.byID[prevID]; ok {
			prev.session.Close()
			delete(s.byID, prevID)
		}
		log.Debug().
			Str("evt.name", "session.replaced").
			Str("userId", userID).
			Str("prevSessionId", prevID).
			Msg("discarded previous session on new start")
	}
	s.byID[id] = &sessionEntry{userID: userID, session: session}
	s.byUser[userID] = id
	s.mu.Unlock()

	view, err := session.Start()
	if err != nil {
		return nil, translateSessionErr(err)
	}

	s.play(ctx, view.Plan)
	return &view, nil
}

// GetSession returns the current view of an owned session.
func (s *Session) GetSession(userID, sessionID string) (*types.SessionView, error) {
	session, err := s.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}
	view := session.View()
	return &view, nil
}

func (s *Session) Answer(userID, sessionID string, selection music.Label, latencyMs int) (*types.SessionView, error) {
	session, err := s.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}
	view, err := session.Answer(selection, latencyMs)
	if err != nil {
		return nil, translateSessionErr(err)
	}
	return &view, nil
}

func (s *Session) Skip(userID, sessionID string) (*types.SessionView, error) {
	session, err := s.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}
	view, err := session.Skip()
	if err != nil {
		return nil, translateSessionErr(err)
	}
	return &view, nil
}

func (s *Session) Reveal(userID, sessionID string) (*types.SessionView, error) {
	session, err := s.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}
	view, err := session.Reveal()
	if err != nil {
		return nil, translateSessionErr(err)
	}
	return &view, nil
}

// Replay rebuilds the playback plan for the current question. Scope narrows
// it to the tonal context or the interval alone.
func (s *Session) Replay(ctx context.Context, userID, sessionID, scope string) (*types.SessionView, error) {
	session, err := s.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}
	view, err := session.Replay(scope)
	if err != nil {
		return nil, translateSessionErr(err)
	}

	s.play(ctx, view.Plan)
	return &view, nil
}

// play mirrors the returned plan onto the local transport. Best-effort: a
// scheduling failure after start never fails the request.
func (s *Session) play(ctx context.Context, plan *audio.Plan) {
	if plan == nil {
		return
	}
	if err := s.Transport.Play(ctx, *plan); err != nil {
		log.Warn().
			Err(err).
			Str("evt.name", "session.playback").
			Msg("failed to schedule playback plan")
	}
}

// CloseSession tears an owned session down and unregisters it.
func (s *Session) CloseSession(userID, sessionID string) error {
	session, err := s.owned(userID, sessionID)
	if err != nil {
		return err
	}
	session.Close()

	s.mu.Lock()
	delete(s.byID, sessionID)
	if s.byUser[userID] == sessionID {
		delete(s.byUser, userID)
	}
	s.mu.Unlock()

	return nil
}

// owned resolves a session ID and checks ownership. Foreign sessions look
// identical to missing ones.
func (s *Session) owned(userID, sessionID string) (*drill.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.byID[sessionID]
	if !ok || entry.userID != userID {
		return nil, apperr.ErrNotFound
	}
	return entry.session, nil
}

func translateSessionErr(err error) error {
	switch {
	case errors.Is(err, drill.ErrSessionLocked):
		return apperr.ErrInvalidReq.Msg("session is busy with playback or feedback; retry shortly")
	case errors.Is(err, drill.ErrSessionNotRunning):
		return apperr.ErrInvalidReq.Msg("session is not running")
	case errors.Is(err, drill.ErrAlreadyStarted):
		return apperr.ErrInvalidReq.Msg("session has already been started")
	case errors.Is(err, drill.ErrSessionClosed):
		return apperr.ErrNotFound
	default:
		return err
	}
}
