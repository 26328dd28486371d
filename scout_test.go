package scout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/ai/mock"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/linkedin"
	"github.com/poiesic/scout/rerank"
	"github.com/poiesic/scout/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchServer(t *testing.T, status *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code := int(status.Load()); code != 0 {
			w.WriteHeader(code)
			return
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "/search-people"):
			_, _ = w.Write([]byte(`{"items":[{"name":"Ada Lovelace"},{"name":"Grace Hopper"},{"name":"Linus Torvalds"}]}`))
		case strings.HasSuffix(r.URL.Path, "/search-jobs-v2"):
			_, _ = w.Write([]byte(`{"items":[{"title":"Backend Go"},{"title":"SRE"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestAssistant(t *testing.T, opts ...AssistantOption) (*Assistant, *mock.MockProvider, *atomic.Int32) {
	t.Helper()
	status := &atomic.Int32{}
	server := searchServer(t, status)

	searchConfig := linkedin.DefaultConfig()
	searchConfig.BaseURL = server.URL
	searchConfig.APIKey = "test-key"
	searchConfig.WaitTime = time.Millisecond

	provider := mock.NewMockProvider().(*mock.MockProvider)
	opts = append([]AssistantOption{WithProvider(provider), WithSearchConfig(searchConfig)}, opts...)

	assistant, err := NewAssistant(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })
	return assistant, provider, status
}

func TestNewAssistant(t *testing.T) {
	t.Run("missing search key", func(t *testing.T) {
		_, err := NewAssistant(WithProvider(mock.NewMockProvider()))
		assert.ErrorIs(t, err, linkedin.ErrAPIKeyRequired)
	})

	t.Run("invalid ai config", func(t *testing.T) {
		config := ai.NewConfig(ai.WithEmbeddingModel(""))
		_, err := NewAssistant(WithAIConfig(config))
		assert.ErrorContains(t, err, "EmbeddingModel is required")
	})

	t.Run("custom dispatcher skips search config", func(t *testing.T) {
		assistant, err := NewAssistant(WithProvider(mock.NewMockProvider()), WithDispatcher(&linkedin.Client{}))
		require.NoError(t, err)
		assert.NoError(t, assistant.Close())
	})
}

func TestAssistant_PeopleSearch(t *testing.T) {
	assistant, provider, _ := newTestAssistant(t)
	ctx := context.Background()

	state, err := assistant.NewSession()
	require.NoError(t, err)

	result, err := assistant.HandleTurn(ctx, state, "busca un senior developer en Madrid")
	require.NoError(t, err)
	assert.Equal(t, core.IntentPeople, result.Intent)
	assert.True(t, result.Ranked)
	require.Len(t, result.Results, 3)
	assert.Equal(t, 1, provider.GetMockEmbedder().BatchCallCount())

	names := make([]string, len(result.Results))
	for i, item := range result.Results {
		names[i] = item.Text("name")
	}
	assert.ElementsMatch(t, []string{"Ada Lovelace", "Grace Hopper", "Linus Torvalds"}, names)

	turns, err := state.Turns(ctx)
	require.NoError(t, err)
	assert.Len(t, turns, 2)

	sessions, err := assistant.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{state.ID()}, sessions)
}

func TestAssistant_JobsSearchWithTitleKey(t *testing.T) {
	assistant, _, _ := newTestAssistant(t, WithRerankOptions(rerank.WithKey("title")))
	state, err := assistant.NewSession()
	require.NoError(t, err)

	result, err := assistant.HandleTurn(context.Background(), state, "busca trabajos remotos de desarrollo de software")
	require.NoError(t, err)
	assert.Equal(t, core.IntentJobs, result.Intent)
	assert.Len(t, result.Results, 2)
}

func TestAssistant_UpstreamFailure(t *testing.T) {
	assistant, _, status := newTestAssistant(t)
	ctx := context.Background()

	state, err := assistant.NewSession()
	require.NoError(t, err)

	_, err = assistant.HandleTurn(ctx, state, "hola")
	require.NoError(t, err)

	status.Store(http.StatusForbidden)
	result, err := assistant.HandleTurn(ctx, state, "busca un senior developer")
	require.NoError(t, err)
	assert.Equal(t, session.StageTurnFailed, result.Stage)
	assert.ErrorIs(t, result.Err, core.ErrUpstreamRejected)

	turns, err := state.Turns(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 4)
	assert.Equal(t, "hola", turns[0].Content)
	assert.Equal(t, result.Reply, turns[3].Content)
}

func TestAssistant_Logout(t *testing.T) {
	assistant, _, _ := newTestAssistant(t)
	ctx := context.Background()

	state, err := assistant.NewSession()
	require.NoError(t, err)
	_, err = assistant.HandleTurn(ctx, state, "ayuda")
	require.NoError(t, err)

	require.NoError(t, assistant.Logout(ctx, state))

	turns, err := state.Turns(ctx)
	require.NoError(t, err)
	assert.Empty(t, turns)

	sessions, err := assistant.Sessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	assert.ErrorIs(t, assistant.Logout(ctx, nil), session.ErrStateRequired)
}
