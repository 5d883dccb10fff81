package exam

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/sebas-09/examen/internal/aiken"
)

var (
	ErrBankNotFound    = errors.New("bank not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyBank       = errors.New("bank has no questions")
)

// Store owns question banks and exam sessions for the HTTP surface. Views
// returned from it are safe copies: answer keys stay hidden while a session
// is in progress and are revealed once it is submitted.
type Store interface {
	PutBank(questions []aiken.Question) (string, error)
	GetBank(id string) ([]aiken.Question, error)
	NewSession(bankID string, count, minutes int) (Session, error)
	SaveAnswer(sessionID, questionID, optionKey string) (Session, error)
	ToggleFlag(sessionID, questionID string) (Session, error)
	Navigate(sessionID string, index int) (Session, error)
	Submit(sessionID string) (Session, error)
	GetSession(sessionID string) (Session, error)
}

// bankState pairs a bank with its no-repeat tracking set. Uploading a new
// bank starts a fresh set; retries against the same bank evolve it.
type bankState struct {
	questions []aiken.Question
	used      UsedIDs
}

type memoryStore struct {
	mu       sync.RWMutex
	engine   *Engine
	banks    map[string]*bankState
	sessions map[string]*Session
	timers   map[string]context.CancelFunc
}

// NewMemoryStore returns an in-memory Store. Nothing survives a process
// restart.
func NewMemoryStore(engine *Engine) Store {
	return &memoryStore{
		engine:   engine,
		banks:    map[string]*bankState{},
		sessions: map[string]*Session{},
		timers:   map[string]context.CancelFunc{},
	}
}

func (m *memoryStore) PutBank(questions []aiken.Question) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.banks[id] = &bankState{questions: questions, used: UsedIDs{}}
	return id, nil
}

func (m *memoryStore) GetBank(id string) ([]aiken.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.banks[id]
	if !ok {
		return nil, ErrBankNotFound
	}
	out := make([]aiken.Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.Clone()
	}
	return out, nil
}

func (m *memoryStore) NewSession(bankID string, count, minutes int) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.banks[bankID]
	if !ok {
		return Session{}, ErrBankNotFound
	}
	if len(b.questions) == 0 {
		return Session{}, ErrEmptyBank
	}

	sess, used, err := m.engine.StartSession(b.questions, count, minutes, b.used)
	if err != nil {
		return Session{}, err
	}
	b.used = used

	sess.ID = uuid.NewString()
	sess.BankID = bankID
	m.sessions[sess.ID] = sess

	// Timer expiry funnels into the same idempotent Submit as an explicit
	// submit; whichever fires first wins.
	ctx, cancel := context.WithCancel(context.Background())
	m.timers[sess.ID] = cancel
	id := sess.ID
	cd := NewCountdown(sess.Deadline, m.engine.now, func() {
		_, _ = m.Submit(id)
	})
	go cd.Run(ctx)

	return m.view(sess), nil
}

func (m *memoryStore) SaveAnswer(sessionID, questionID, optionKey string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	sess.RecordAnswer(questionID, optionKey)
	return m.view(sess), nil
}

func (m *memoryStore) ToggleFlag(sessionID, questionID string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	sess.ToggleFlag(questionID)
	return m.view(sess), nil
}

func (m *memoryStore) Navigate(sessionID string, index int) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if len(sess.Questions) > 0 {
		sess.Index = clampInt(index, 0, len(sess.Questions)-1)
	}
	return m.view(sess), nil
}

func (m *memoryStore) Submit(sessionID string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if !sess.Submitted {
		sess.Submitted = true
		sc := sess.ComputeScore()
		sess.Score = &sc
		if cancel, ok := m.timers[sessionID]; ok {
			cancel()
			delete(m.timers, sessionID)
		}
	}
	return m.view(sess), nil
}

func (m *memoryStore) GetSession(sessionID string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return m.view(sess), nil
}

// view deep-copies a session for callers outside the lock. Answer keys are
// stripped until the session is submitted.
func (m *memoryStore) view(sess *Session) Session {
	out := *sess
	out.Questions = make([]aiken.Question, len(sess.Questions))
	for i, q := range sess.Questions {
		c := q.Clone()
		if !sess.Submitted {
			c.AnswerKey = ""
		}
		out.Questions[i] = c
	}
	out.Answers = make(map[string]string, len(sess.Answers))
	for k, v := range sess.Answers {
		out.Answers[k] = v
	}
	out.Flagged = make(map[string]bool, len(sess.Flagged))
	for k, v := range sess.Flagged {
		out.Flagged[k] = v
	}
	if sess.Score != nil {
		sc := *sess.Score
		out.Score = &sc
	}
	return out
}
