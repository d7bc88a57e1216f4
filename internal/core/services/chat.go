package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
	"github.com/ragscholar/scholar-cli/internal/logger"
)

// maxSessionNameLen caps the display name derived from the first
// message of a conversation.
const maxSessionNameLen = 48

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService owns the session registry and the message pipeline.
//
// The service tracks exactly one active conversation: its session,
// its transcript and its class binding. Sessions start provisional
// (client-side only) and become persisted when the first message
// forces backend creation. The transcript cache is written on every
// append so switching sessions or classes never loses messages.
type ChatService struct {
	backend driven.BackendClient
	cache   driven.TranscriptCache
	kv      driven.KVStore
	classes driven.ClassStore

	profileContext string

	mu         sync.Mutex
	sessions   []domain.Session
	active     *domain.Session
	transcript domain.Transcript
	classID    string
	sending    bool
	refreshGen uint64
}

// NewChatService creates a new chat service.
func NewChatService(
	backend driven.BackendClient,
	cache driven.TranscriptCache,
	kv driven.KVStore,
	classes driven.ClassStore,
) *ChatService {
	return &ChatService{
		backend: backend,
		cache:   cache,
		kv:      kv,
		classes: classes,
	}
}

// SetProfileContext sets free-form user context forwarded with every
// chat request.
func (s *ChatService) SetProfileContext(ctx string) {
	s.mu.Lock()
	s.profileContext = ctx
	s.mu.Unlock()
}

// Restore loads the last active session and its cached transcript.
// Works offline: with the backend unreachable the cached transcript is
// still shown under a stub session entry.
func (s *ChatService) Restore(ctx context.Context) error {
	classID, err := s.kv.Get(ctx, driven.KeyActiveClassID)
	if err != nil {
		return fmt.Errorf("restoring class binding: %w", err)
	}

	sessionID, err := s.kv.Get(ctx, driven.KeyLastSessionID)
	if err != nil {
		return fmt.Errorf("restoring session binding: %w", err)
	}

	s.mu.Lock()
	s.classID = classID
	s.mu.Unlock()

	if sessionID == "" {
		// No session: fall back to the class's cached conversation.
		if classID != "" {
			t, err := s.cache.Get(ctx, driven.ScopeClass, classID)
			if err == nil {
				s.mu.Lock()
				s.transcript = t
				s.mu.Unlock()
			}
		}
		return nil
	}

	t, err := s.cache.Get(ctx, driven.ScopeSession, sessionID)
	if err != nil {
		logger.Warn("reading cached transcript for %s: %v", sessionID, err)
		t = domain.Transcript{}
	}

	if err := s.RefreshSessions(ctx); err != nil {
		// Offline restore: trust the cache, stub the session entry.
		logger.Warn("session refresh during restore: %v", err)
		s.mu.Lock()
		s.active = &domain.Session{
			ID:           sessionID,
			Name:         "Restored conversation",
			MessageCount: t.Len(),
			ClassID:      classID,
			State:        domain.SessionPersisted,
		}
		s.transcript = t
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	found := s.findSessionLocked(sessionID)
	if found == nil {
		// The session was deleted from another client. Drop it.
		s.mu.Unlock()
		logger.Info("last session %s no longer exists, starting fresh", sessionID)
		_ = s.kv.Delete(ctx, driven.KeyLastSessionID)
		_ = s.cache.Delete(ctx, driven.ScopeSession, sessionID)
		return nil
	}
	session := *found
	s.active = &session
	s.transcript = t
	s.classID = session.ClassID
	s.mu.Unlock()

	// A cold cache with server-side history gets refilled.
	if t.Empty() && session.MessageCount > 0 {
		if fetched, err := s.backend.GetSessionMessages(ctx, sessionID); err == nil {
			s.mu.Lock()
			s.transcript = fetched
			s.mu.Unlock()
			if err := s.cache.Put(ctx, driven.ScopeSession, sessionID, fetched); err != nil {
				logger.Warn("caching restored transcript: %v", err)
			}
		}
	}
	return nil
}

// RefreshSessions re-fetches the session list from the backend.
func (s *ChatService) RefreshSessions(ctx context.Context) error {
	sessions, err := s.backend.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("refreshing sessions: %w", err)
	}

	s.mu.Lock()
	s.refreshGen++
	s.sessions = sessions
	s.mu.Unlock()
	return nil
}

// Sessions returns the known session list. The active provisional
// session is included even though the backend does not know it yet,
// and the active session's MessageCount reflects the live transcript.
func (s *ChatService) Sessions() []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Session, 0, len(s.sessions)+1)
	if s.active != nil && !s.active.Persisted() {
		provisional := *s.active
		provisional.MessageCount = s.transcript.Len()
		out = append(out, provisional)
	}
	for _, session := range s.sessions {
		if s.active != nil && session.ID == s.active.ID {
			session.MessageCount = s.transcript.Len()
		}
		out = append(out, session)
	}
	return out
}

// ActiveSession returns the session the transcript belongs to, nil
// when no conversation has been started.
func (s *ChatService) ActiveSession() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	session := *s.active
	session.MessageCount = s.transcript.Len()
	return &session
}

// Transcript returns a snapshot of the active transcript.
func (s *ChatService) Transcript() domain.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Clone()
}

// NewChat starts a fresh provisional conversation. The outgoing
// transcript is cached by session id so the conversation can be
// resumed, and an outgoing empty persisted session is deleted rather
// than left to clutter the registry.
func (s *ChatService) NewChat(ctx context.Context) error {
	s.stashOutgoingSession(ctx)

	s.mu.Lock()
	s.active = s.newProvisionalLocked()
	s.transcript = domain.Transcript{}
	s.mu.Unlock()

	return s.kv.Delete(ctx, driven.KeyLastSessionID)
}

// SwitchSession makes a listed session active. The transcript comes
// from the cache, or from the backend when the cache is cold.
func (s *ChatService) SwitchSession(ctx context.Context, id string) error {
	s.mu.Lock()
	target := s.findSessionLocked(id)
	if target == nil {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	session := *target
	if s.active != nil && s.active.ID == id {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.stashOutgoingSession(ctx)

	t, err := s.cache.Get(ctx, driven.ScopeSession, id)
	if err != nil {
		logger.Warn("reading cached transcript for %s: %v", id, err)
		t = domain.Transcript{}
	}
	if t.Empty() && session.MessageCount > 0 {
		fetched, err := s.backend.GetSessionMessages(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching transcript for %s: %w", id, err)
		}
		t = fetched
		if err := s.cache.Put(ctx, driven.ScopeSession, id, t); err != nil {
			logger.Warn("caching transcript for %s: %v", id, err)
		}
	}

	s.mu.Lock()
	s.active = &session
	s.transcript = t
	s.classID = session.ClassID
	s.mu.Unlock()

	return s.kv.Put(ctx, driven.KeyLastSessionID, id)
}

// SwitchClass rebinds the conversation context to a new class. The
// outgoing class keeps its conversation in the class-scoped cache and
// the incoming class's cached conversation becomes active. The session
// binding is cleared so the next send starts a fresh session in the
// new class.
func (s *ChatService) SwitchClass(ctx context.Context, outgoingClassID, incomingClassID string) error {
	s.mu.Lock()
	t := s.transcript.Clone()
	s.mu.Unlock()

	if outgoingClassID != "" {
		if err := s.cache.Put(ctx, driven.ScopeClass, outgoingClassID, t); err != nil {
			logger.Warn("caching class transcript %s: %v", outgoingClassID, err)
		}
	}

	s.stashOutgoingSession(ctx)

	incoming := domain.Transcript{}
	if incomingClassID != "" {
		cached, err := s.cache.Get(ctx, driven.ScopeClass, incomingClassID)
		if err != nil {
			logger.Warn("reading class transcript %s: %v", incomingClassID, err)
		} else {
			incoming = cached
		}
	}

	s.mu.Lock()
	s.classID = incomingClassID
	s.active = nil
	s.transcript = incoming
	s.mu.Unlock()

	return s.kv.Delete(ctx, driven.KeyLastSessionID)
}

// Send dispatches one user message through the pipeline: lazy session
// creation, optimistic transcript append, backend round-trip, reply or
// synthetic error append, then an asynchronous session-list refresh.
//
// Sends are serialised; a call while another is outstanding returns
// domain.ErrSendInFlight immediately.
func (s *ChatService) Send(ctx context.Context, query string) (*domain.Message, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return nil, domain.ErrSendInFlight
	}
	s.sending = true
	if s.active == nil {
		s.active = s.newProvisionalLocked()
	}
	active := *s.active
	classID := s.classID
	profileContext := s.profileContext
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.sending = false
		s.mu.Unlock()
	}()

	// First message of a provisional conversation creates the backend
	// session. Exactly one creation per conversation: once persisted,
	// the session is reused for every later send.
	if !active.Persisted() {
		created, err := s.persistSession(ctx, query, classID)
		if err != nil {
			userMsg := newMessage(domain.RoleUser, query, nil)
			errMsg := syntheticErrorMessage(err)
			s.appendAndCache(ctx, userMsg)
			s.appendAndCache(ctx, errMsg)
			return &errMsg, fmt.Errorf("creating session: %w", err)
		}
		s.mu.Lock()
		s.active = created
		active = *created
		s.mu.Unlock()
		if err := s.kv.Put(ctx, driven.KeyLastSessionID, created.ID); err != nil {
			logger.Warn("persisting session binding: %v", err)
		}
	}

	userMsg := newMessage(domain.RoleUser, query, nil)
	s.appendAndCache(ctx, userMsg)

	reply, err := s.backend.SendChat(ctx, domain.ChatRequest{
		Query:          query,
		SessionID:      active.ID,
		ClassID:        classID,
		DocumentIDs:    s.classDocuments(ctx, classID),
		ProfileContext: profileContext,
	})
	if err != nil {
		// The conversation must never hang on a failed turn.
		errMsg := syntheticErrorMessage(err)
		s.appendAndCache(ctx, errMsg)
		return &errMsg, fmt.Errorf("sending chat: %w", err)
	}

	// Some backends issue the canonical session id on the first
	// exchange; adopt it so later sends and caches use one id.
	if reply.SessionID != "" && reply.SessionID != active.ID {
		s.adoptSessionID(ctx, active.ID, reply.SessionID)
	}

	assistantMsg := newMessage(domain.RoleAssistant, reply.Answer, reply.Citations)
	s.appendAndCache(ctx, assistantMsg)

	s.refreshSessionsAsync()
	return &assistantMsg, nil
}

// RenameSession changes a persisted session's display name.
func (s *ChatService) RenameSession(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: session name must not be empty", domain.ErrInvalidInput)
	}

	if err := s.backend.RenameSession(ctx, id, name); err != nil {
		return fmt.Errorf("renaming session %s: %w", id, err)
	}

	s.mu.Lock()
	if found := s.findSessionLocked(id); found != nil {
		found.Name = name
	}
	if s.active != nil && s.active.ID == id {
		s.active.Name = name
	}
	s.mu.Unlock()
	return nil
}

// DeleteSession removes a session server-side and purges its cached
// transcript. Deleting the active session clears the conversation.
func (s *ChatService) DeleteSession(ctx context.Context, id string) error {
	if err := s.backend.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	s.forgetSession(ctx, id)
	return nil
}

// DeleteSessionsForClass removes every session tagged with the class
// id. Individual failures are logged and do not stop the cascade.
func (s *ChatService) DeleteSessionsForClass(ctx context.Context, classID string) error {
	s.mu.Lock()
	var ids []string
	for i := range s.sessions {
		if s.sessions[i].ClassID == classID {
			ids = append(ids, s.sessions[i].ID)
		}
	}
	s.mu.Unlock()

	for _, id := range ids {
		if err := s.backend.DeleteSession(ctx, id); err != nil {
			logger.Warn("deleting session %s: %v", id, err)
		}
		s.forgetSession(ctx, id)
	}
	return nil
}

// stashOutgoingSession caches the active transcript under the session
// id and deletes an empty persisted session so abandoned conversations
// do not accumulate. A failed backend delete is logged; the local
// purge happens regardless.
func (s *ChatService) stashOutgoingSession(ctx context.Context) {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return
	}
	outgoing := *s.active
	t := s.transcript.Clone()
	s.mu.Unlock()

	if outgoing.Persisted() && t.Empty() {
		if err := s.backend.DeleteSession(ctx, outgoing.ID); err != nil {
			logger.Warn("deleting empty session %s: %v", outgoing.ID, err)
		}
		s.forgetSession(ctx, outgoing.ID)
		return
	}

	if !t.Empty() {
		if err := s.cache.Put(ctx, driven.ScopeSession, outgoing.ID, t); err != nil {
			logger.Warn("caching transcript for %s: %v", outgoing.ID, err)
		}
	}
}

// forgetSession removes a session from local state: registry entry,
// cached transcript and, when active, the live conversation.
func (s *ChatService) forgetSession(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, driven.ScopeSession, id); err != nil {
		logger.Warn("purging transcript for %s: %v", id, err)
	}

	s.mu.Lock()
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	wasActive := s.active != nil && s.active.ID == id
	if wasActive {
		s.active = nil
		s.transcript = domain.Transcript{}
	}
	s.mu.Unlock()

	if wasActive {
		if err := s.kv.Delete(ctx, driven.KeyLastSessionID); err != nil {
			logger.Warn("clearing session binding: %v", err)
		}
	}
}

// persistSession creates the backend session for a provisional
// conversation, naming it after the first question.
func (s *ChatService) persistSession(ctx context.Context, firstQuery, classID string) (*domain.Session, error) {
	className := ""
	if classID != "" {
		if class, err := s.classes.Get(ctx, classID); err == nil {
			className = class.Name
		}
	}
	return s.backend.CreateSession(ctx, sessionName(firstQuery), classID, className)
}

// adoptSessionID re-keys the active conversation when the backend
// echoes a different session id than the one sent. The registry entry,
// the cached transcript and the persisted session binding all move to
// the new id.
func (s *ChatService) adoptSessionID(ctx context.Context, oldID, newID string) {
	s.mu.Lock()
	if s.active == nil || s.active.ID != oldID {
		s.mu.Unlock()
		return
	}
	s.active.ID = newID
	if found := s.findSessionLocked(oldID); found != nil {
		found.ID = newID
	}
	t := s.transcript.Clone()
	s.mu.Unlock()

	if err := s.cache.Delete(ctx, driven.ScopeSession, oldID); err != nil {
		logger.Warn("purging transcript for %s: %v", oldID, err)
	}
	if !t.Empty() {
		if err := s.cache.Put(ctx, driven.ScopeSession, newID, t); err != nil {
			logger.Warn("caching transcript for %s: %v", newID, err)
		}
	}
	if err := s.kv.Put(ctx, driven.KeyLastSessionID, newID); err != nil {
		logger.Warn("persisting session binding: %v", err)
	}
}

// appendAndCache appends a message to the live transcript and writes
// through to the session and class caches.
func (s *ChatService) appendAndCache(ctx context.Context, msg domain.Message) {
	s.mu.Lock()
	s.transcript = s.transcript.Append(msg)
	if s.active != nil {
		s.active.MessageCount = s.transcript.Len()
		s.active.UpdatedAt = msg.CreatedAt
	}
	t := s.transcript.Clone()
	sessionID := ""
	if s.active != nil {
		sessionID = s.active.ID
	}
	classID := s.classID
	s.mu.Unlock()

	if sessionID != "" {
		if err := s.cache.Put(ctx, driven.ScopeSession, sessionID, t); err != nil {
			logger.Warn("caching transcript for %s: %v", sessionID, err)
		}
	}
	if classID != "" {
		if err := s.cache.Put(ctx, driven.ScopeClass, classID, t); err != nil {
			logger.Warn("caching class transcript %s: %v", classID, err)
		}
	}
}

// refreshSessionsAsync refreshes the session list without blocking the
// caller. A generation counter discards completions that raced with a
// newer refresh, so stale lists never overwrite fresh ones.
func (s *ChatService) refreshSessionsAsync() {
	s.mu.Lock()
	s.refreshGen++
	gen := s.refreshGen
	s.mu.Unlock()

	go func() {
		sessions, err := s.backend.ListSessions(context.Background())
		if err != nil {
			logger.Debug("background session refresh: %v", err)
			return
		}
		s.mu.Lock()
		if s.refreshGen == gen {
			s.sessions = sessions
		}
		s.mu.Unlock()
	}()
}

// classDocuments resolves the document scope for a chat request.
func (s *ChatService) classDocuments(ctx context.Context, classID string) []string {
	if classID == "" {
		return nil
	}
	class, err := s.classes.Get(ctx, classID)
	if err != nil {
		return nil
	}
	return class.Documents
}

// findSessionLocked returns a pointer to the registry entry with the
// given id, or nil when it is not listed. Caller must hold s.mu.
func (s *ChatService) findSessionLocked(id string) *domain.Session {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return &s.sessions[i]
		}
	}
	return nil
}

// newProvisionalLocked builds a client-side session bound to the
// current class. Caller must hold s.mu.
func (s *ChatService) newProvisionalLocked() *domain.Session {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Name:      "New conversation",
		ClassID:   s.classID,
		State:     domain.SessionProvisional,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.classID != "" {
		if class, err := s.classes.Get(context.Background(), s.classID); err == nil {
			session.ClassName = class.Name
		}
	}
	return session
}

// newMessage builds a transcript message with a fresh id.
func newMessage(role domain.Role, content string, citations []domain.Citation) domain.Message {
	return domain.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Citations: citations,
		CreatedAt: time.Now(),
	}
}

// syntheticErrorMessage wraps a failed turn in an assistant message so
// the transcript shows what happened instead of silently dropping the
// question.
func syntheticErrorMessage(err error) domain.Message {
	return newMessage(domain.RoleAssistant,
		fmt.Sprintf("Sorry, something went wrong handling that question: %v. Please try again.", err), nil)
}

// sessionName derives a display name from the first message, cut at a
// word boundary.
func sessionName(query string) string {
	runes := []rune(strings.TrimSpace(query))
	if len(runes) <= maxSessionNameLen {
		return string(runes)
	}
	cut := string(runes[:maxSessionNameLen])
	if idx := strings.LastIndex(cut, " "); idx > maxSessionNameLen/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
