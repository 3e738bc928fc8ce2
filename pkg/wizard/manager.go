package wizard

import (
	"NutriMind-Backend/domain"
	"sync"
	"time"
)

const defaultGenerateTimeout = 60 * time.Second

// Manager hands out one Session per user. A user with a saved profile lands
// on the dashboard; everyone else starts the questionnaire at the welcome
// step.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	store        ProfileStore
	generator    Generator
	entitlements Entitlements
	timeout      time.Duration
}

func NewManager(store ProfileStore, generator Generator, entitlements Entitlements) *Manager {
	return &Manager{
		sessions:     make(map[string]*Session),
		store:        store,
		generator:    generator,
		entitlements: entitlements,
		timeout:      defaultGenerateTimeout,
	}
}

// Session returns the user's session, creating it on first touch. hasProfile
// and seed come from the profile store so a returning user resumes with
// their saved answers on the dashboard.
func (m *Manager) Session(userID string, hasProfile bool, seed domain.ProfileData) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[userID]; ok {
		return session
	}

	session := &Session{
		userID:       userID,
		data:         seed,
		store:        m.store,
		generator:    m.generator,
		entitlements: m.entitlements,
		timeout:      m.timeout,
	}
	if hasProfile {
		session.mode = ModeDashboard
	}
	m.sessions[userID] = session
	return session
}
