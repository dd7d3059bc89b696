package connection

import (
	"encoding/base64"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

type SessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

func NewSessionManager() *SessionManager {
	initMapSize := 10

	return &SessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: time.Minute * 20,
	}
}

func (sm *SessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	sm.mu.Lock()
	sm.sessions[sessionId] = session
	sm.mu.Unlock()

	return session
}

func (sm *SessionManager) FindSession(sessionId string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, prs := sm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	return session, nil
}

func (sm *SessionManager) TerminateSession(sessionId string) {
	sm.mu.Lock()
	delete(sm.sessions, sessionId)
	sm.mu.Unlock()
}

// WriteToSession resolves a connection handle and sends the message
// to it. The session owning the handle may be gone already; callers
// treat that as a delivery failure, never as a state rollback.
func (sm *SessionManager) WriteToSession(sessionId string, msg interface{}) error {
	session, err := sm.FindSession(sessionId)
	if err != nil {
		return err
	}
	return session.writeToConnWithRetry(msg)
}

// Broadcast fans a message out to every connected session. Send
// failures are logged and swallowed; a dead peer must not stop the
// rest of the lobby from hearing the update.
func (sm *SessionManager) Broadcast(msg interface{}) {
	sm.mu.RLock()
	receivers := make([]*Session, 0, len(sm.sessions))
	for _, session := range sm.sessions {
		receivers = append(receivers, session)
	}
	sm.mu.RUnlock()

	for _, session := range receivers {
		if err := session.writeToConnWithRetry(msg); err != nil {
			log.Printf("broadcast to session %s failed: %v", session.id, err)
		}
	}
}

// ReadFromSession blocks on the next frame from the session conn,
// retrying transient read errors.
func (sm *SessionManager) ReadFromSession(session *Session) ([]byte, error) {
	var retries uint8

	for {
		_, payload, err := session.conn.ReadMessage()
		if err == nil {
			sm.mu.Lock()
			session.lastSeen = time.Now()
			sm.mu.Unlock()
			return payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		default:
			return nil, err
		}
	}
}

// To ensure that there are no dangling connections, sessions idle for
// longer than the cleanup interval are marked stale and deleted.
func (sm *SessionManager) CleanupPeriodically() {
	assumedClosedConns := 10

	for {
		time.Sleep(sm.cleanupInterval)

		sm.mu.Lock()
		toDelete := make([]string, 0, assumedClosedConns)

		for id, session := range sm.sessions {
			if time.Since(session.lastSeen) > sm.cleanupInterval {
				toDelete = append(toDelete, id)
			}
		}

		for _, id := range toDelete {
			delete(sm.sessions, id)
			log.Printf("removed stale session: %s", id)
		}
		sm.mu.Unlock()
	}
}
