package ports

import "github.com/aprenda/tutor/pkg/domain"

// LessonProvider adapts externally loaded topic configuration into a
// LessonSpec. Implementations must tolerate missing or empty fields by
// falling back to a single generic micro-goal.
type LessonProvider interface {
	Build(topicRecord map[string]any, languageMode string) (*domain.LessonSpec, error)
}
