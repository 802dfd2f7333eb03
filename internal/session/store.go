package session

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/edusuite/virtualschool-backend/internal/model"
)

// cookieName is the session cookie holding the signed session ID.
const cookieName = "vs_session"

// ContextKeyState is the Gin context key the middleware stores the session
// State under.
const ContextKeyState = "session_state"

// State is the per-session mutable document, keyed by feature area. All
// access goes through its methods; the mutex covers every field.
type State struct {
	mu sync.Mutex

	quiz          *model.Quiz
	quizAnswers   map[int]string
	quizResult    *model.QuizResult
	quizSubmitted bool
	quizHistory   []QuizHistoryEntry

	assignment          *model.Assignment
	assignmentAnswers   map[string]string
	assignmentResult    *model.AssignmentResult
	assignmentSubmitted bool
	assignmentHistory   []AssignmentHistoryEntry
}

func newState() *State {
	return &State{
		quizAnswers:       make(map[int]string),
		assignmentAnswers: make(map[string]string),
	}
}

// Store maps signed cookie session IDs to in-memory State. Nothing is
// persisted: a process restart is a full-session reset for every client.
type Store struct {
	mu      sync.Mutex
	cookies *sessions.CookieStore
	states  map[string]*State
}

// NewStore creates a session store. The secret signs the session cookie so
// clients cannot forge each other's session IDs.
func NewStore(secret string) *Store {
	cookies := sessions.NewCookieStore([]byte(secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{
		cookies: cookies,
		states:  make(map[string]*State),
	}
}

// Middleware resolves (or creates) the caller's session and attaches its
// State to the Gin context.
func (st *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get returns a fresh session when the cookie is absent or invalid.
		sess, _ := st.cookies.Get(c.Request, cookieName)

		id, ok := sess.Values["sid"].(string)
		if !ok || id == "" {
			id = uuid.New().String()
			sess.Values["sid"] = id
			_ = sess.Save(c.Request, c.Writer)
		}

		c.Set(ContextKeyState, st.state(id))
		c.Next()
	}
}

// FromContext returns the session State the middleware attached, or nil
// when the route runs without session middleware.
func FromContext(c *gin.Context) *State {
	if v, ok := c.Get(ContextKeyState); ok {
		if state, ok := v.(*State); ok {
			return state
		}
	}
	return nil
}

func (st *Store) state(id string) *State {
	st.mu.Lock()
	defer st.mu.Unlock()
	state, ok := st.states[id]
	if !ok {
		state = newState()
		st.states[id] = state
	}
	return state
}
