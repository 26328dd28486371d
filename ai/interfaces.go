package ai

import (
	"context"

	"github.com/poiesic/scout/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IntentClassifier maps free text to one of the fixed intents.
// Implementations must be thread-safe for concurrent use.
type IntentClassifier interface {
	// Classify submits the query to the language backend and returns the
	// intent together with the backend's message for the user.
	// Greetings and meta-questions must not be classified as searches.
	// Returns an error if the backend call fails; no retry happens here.
	Classify(ctx context.Context, query core.Query) (*Classification, error)
}

// Classification is the outcome of classifying a single query.
type Classification struct {
	// Intent is the routing decision.
	Intent core.Intent

	// Message is the backend's free text answer, shown to the user as-is.
	// It is advisory only; search parameters are derived from the query.
	Message string
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and IntentClassifier instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Classifier returns the intent classification service.
	// The returned IntentClassifier is safe for concurrent use.
	Classifier() IntentClassifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
