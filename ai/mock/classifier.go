package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
)

// MockClassifier is a test double for ai.IntentClassifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, uses default keyword routing.
	ClassifyFunc func(ctx context.Context, query core.Query) (*ai.Classification, error)

	mu        sync.Mutex
	callCount int
}

// NewMockClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify routes the query on keywords.
// Default behavior: help words win, then job words, then people words;
// everything else, greetings included, is generic.
func (m *MockClassifier) Classify(ctx context.Context, query core.Query) (*ai.Classification, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.ClassifyFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query)
	}

	text := strings.ToLower(string(query))
	switch {
	case containsAny(text, "ayuda", "que hacer", "qué hacer"):
		return &ai.Classification{Intent: core.IntentHelp, Message: "Puedo buscar personas o trabajos."}, nil
	case containsAny(text, "trabajo", "empleo", "oferta", "vacante"):
		return &ai.Classification{Intent: core.IntentJobs, Message: ai.JobsMarker}, nil
	case containsAny(text, "persona", "developer", "desarrollador", "ingenier", "empleado"):
		return &ai.Classification{Intent: core.IntentPeople, Message: ai.PeopleMarker}, nil
	default:
		return &ai.Classification{Intent: core.IntentGeneric, Message: "¡Hola! ¿Qué quieres buscar?"}, nil
	}
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockClassifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ClassifyFunc = nil
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
