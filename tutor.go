package tutor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aprenda/tutor/internal/learning"
	"github.com/aprenda/tutor/internal/logging"
	"github.com/aprenda/tutor/internal/simulator"
	"github.com/aprenda/tutor/pkg/adapters/memory"
	"github.com/aprenda/tutor/pkg/domain"
	"github.com/aprenda/tutor/pkg/lessonspec"
	"github.com/aprenda/tutor/pkg/ports"
	"github.com/aprenda/tutor/pkg/session"
)

// Engine is the high-level entry point for the tutor library. It wraps the
// learning and simulator orchestrators, the topic catalog, and the session
// managers behind a simplified API for hosts (HTTP server, CLI).
type Engine struct {
	learning  *learning.Engine
	simulator *simulator.Engine
	catalog   *lessonspec.Catalog

	sessions    *session.Manager[domain.SessionState]
	simSessions *session.Manager[domain.SimulatorState]

	sessionStore ports.SessionStore
	simStore     ports.SimulatorStore
	locker       ports.DistributedLocker
	logger       *slog.Logger
	learningOpts []learning.Option
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine and both orchestrators.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithCatalog replaces the embedded default topic catalog.
func WithCatalog(c *lessonspec.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithSessionStore injects the learning-mode session store (default: in-memory).
func WithSessionStore(s ports.SessionStore) Option {
	return func(e *Engine) { e.sessionStore = s }
}

// WithSimulatorStore injects the simulator session store (default: in-memory).
func WithSimulatorStore(s ports.SimulatorStore) Option {
	return func(e *Engine) { e.simStore = s }
}

// WithLocker enables distributed locking on both session managers.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) { e.locker = l }
}

// WithMeaningFallback overrides the learning engine's fallback meaning label.
func WithMeaningFallback(meaning string) Option {
	return func(e *Engine) {
		e.learningOpts = append(e.learningOpts, learning.WithMeaningFallback(meaning))
	}
}

// New initializes a tutor Engine. Without options it runs fully in-memory
// with the embedded topic catalog.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	if e.catalog == nil {
		catalog, err := lessonspec.NewCatalog()
		if err != nil {
			return nil, fmt.Errorf("failed to load topic catalog: %w", err)
		}
		e.catalog = catalog
	}
	if e.sessionStore == nil {
		e.sessionStore = memory.NewSessionStore()
	}
	if e.simStore == nil {
		e.simStore = memory.NewSimulatorStore()
	}

	e.learning = learning.New(append([]learning.Option{learning.WithLogger(e.logger)}, e.learningOpts...)...)
	e.simulator = simulator.New(simulator.WithLogger(e.logger))

	sessionOpts := []session.Option[domain.SessionState]{session.WithLogger[domain.SessionState](e.logger)}
	simOpts := []session.Option[domain.SimulatorState]{session.WithLogger[domain.SimulatorState](e.logger)}
	if e.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker[domain.SessionState](e.locker))
		simOpts = append(simOpts, session.WithLocker[domain.SimulatorState](e.locker))
	}
	e.sessions = session.NewManager(e.sessionStore, sessionOpts...)
	e.simSessions = session.NewManager(e.simStore, simOpts...)

	return e, nil
}

// LearningTurn runs one learning-mode exchange: it loads (or starts) the
// session, builds the lesson spec for the topic, processes the student
// message, and persists the updated state before returning the reply.
func (e *Engine) LearningTurn(ctx context.Context, sessionID, topicID, message string) (string, *domain.SessionState, error) {
	var reply string
	var state *domain.SessionState

	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = e.sessions.Store().Load(ctx, sessionID)
		if err == domain.ErrSessionNotFound {
			state = domain.NewSessionState()
			err = nil
		}
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		if topicID == "" {
			topicID = state.TopicName
		}
		if topicID == "" {
			topicID = "verb_to_be"
		}
		spec, err := e.catalog.Spec(topicID, string(state.StudentPref.LanguageMode))
		if err != nil {
			return err
		}
		state.TopicName = topicID

		reply = e.learning.OnStudentMessage(message, spec, state)
		if err := e.sessions.Store().Save(ctx, sessionID, state); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
	return reply, state, err
}

// SimulatorTurn runs one roleplay exchange, persisting the updated state.
func (e *Engine) SimulatorTurn(ctx context.Context, sessionID, theme, message string) (string, *domain.SimulatorState, error) {
	var reply string
	var state *domain.SimulatorState

	err := e.simSessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = e.simSessions.Store().Load(ctx, sessionID)
		if err == domain.ErrSessionNotFound {
			state = domain.NewSimulatorState(theme)
			err = nil
		}
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		reply = e.simulator.OnMessage(message, state, theme)
		if err := e.simSessions.Store().Save(ctx, sessionID, state); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
	return reply, state, err
}

// Validate post-processes externally generated assistant text. In simulator
// mode it applies the character-break rewrites; in learning mode it enforces
// the line budget and question-ending rule for the given topic.
func (e *Engine) Validate(text, topicID string, isSimulator bool) (string, error) {
	if isSimulator {
		return simulator.ValidateResponse(text), nil
	}
	spec, err := e.catalog.Spec(topicID, string(domain.LanguageBilingual))
	if err != nil {
		return "", err
	}
	return e.learning.ValidateAndFinalize(text, spec), nil
}

// Topics lists the catalog entries.
func (e *Engine) Topics() []lessonspec.TopicInfo {
	return e.catalog.Topics()
}

// Sessions returns the learning-mode session manager.
func (e *Engine) Sessions() *session.Manager[domain.SessionState] {
	return e.sessions
}

// SimulatorSessions returns the simulator session manager.
func (e *Engine) SimulatorSessions() *session.Manager[domain.SimulatorState] {
	return e.simSessions
}
