package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/poiesic/scout"
	"github.com/poiesic/scout/ai/mock"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type stubDispatcher struct {
	calls atomic.Int32
	err   error
}

func (d *stubDispatcher) Dispatch(ctx context.Context, kind core.SearchKind, params core.SearchParameters) (core.ResultSet, error) {
	d.calls.Add(1)
	if d.err != nil {
		return nil, d.err
	}
	return core.ResultSet{{"name": "Ada Lovelace", "title": "Backend"}}, nil
}

func newTestAssistant(t *testing.T, dispatcher *stubDispatcher) *scout.Assistant {
	t.Helper()
	assistant, err := scout.NewAssistant(
		scout.WithProvider(mock.NewMockProvider()),
		scout.WithDispatcher(dispatcher),
	)
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })
	return assistant
}

func TestAppFlags(t *testing.T) {
	app := newApp()

	t.Run("log-level defaults to info", func(t *testing.T) {
		var levelFlag *cli.StringFlag
		for _, flag := range app.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "log-level" {
				levelFlag = f
			}
		}
		require.NotNil(t, levelFlag)
		assert.Equal(t, "info", levelFlag.Value)
	})

	t.Run("batch requires a file", func(t *testing.T) {
		err := newApp().Run([]string{"scout", "batch"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file")
	})

	t.Run("invalid log level", func(t *testing.T) {
		err := newApp().Run([]string{"scout", "--log-level", "loud", "ask", "hola"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("ask requires a query", func(t *testing.T) {
		err := newApp().Run([]string{"scout", "ask"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query is required")
	})
}

func TestRunChat(t *testing.T) {
	dispatcher := &stubDispatcher{}
	assistant := newTestAssistant(t, dispatcher)

	in := strings.NewReader("hola\n\nbusco un desarrollador en Madrid\nayuda\n")
	var out bytes.Buffer

	require.NoError(t, runChat(context.Background(), assistant, in, &out))

	text := out.String()
	assert.Equal(t, 5, strings.Count(text, session.Prompt), "prompt before every read, blank lines and EOF included")
	assert.Contains(t, text, "¡Hola! ¿Qué quieres buscar?")
	assert.Contains(t, text, `"name": "Ada Lovelace"`)
	assert.Contains(t, text, session.HelpText)
	assert.Equal(t, int32(1), dispatcher.calls.Load())

	sessions, err := assistant.Sessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 1, "the whole chat is one session")
}

func TestRunChat_Logout(t *testing.T) {
	assistant := newTestAssistant(t, &stubDispatcher{})

	in := strings.NewReader("hola\n/salir\nesto no se lee\n")
	var out bytes.Buffer

	require.NoError(t, runChat(context.Background(), assistant, in, &out))
	assert.Contains(t, out.String(), "Sesión cerrada.")
	assert.NotContains(t, out.String(), "esto no se lee")

	sessions, err := assistant.Sessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions, "logout clears the stored transcript")
}

func TestRunChat_FailedTurnKeepsGoing(t *testing.T) {
	dispatcher := &stubDispatcher{err: fmt.Errorf("%w: status 503", core.ErrUpstreamRejected)}
	assistant := newTestAssistant(t, dispatcher)

	in := strings.NewReader("busco trabajo de backend\nhola\n")
	var out bytes.Buffer

	require.NoError(t, runChat(context.Background(), assistant, in, &out))
	assert.Contains(t, out.String(), "¡Hola! ¿Qué quieres buscar?", "session remains usable after a failed turn")
}

func TestRunBatch(t *testing.T) {
	dispatcher := &stubDispatcher{}
	assistant := newTestAssistant(t, dispatcher)

	queries := []string{
		"busco un desarrollador",
		"hola",
		"ofertas de trabajo en Lima",
		"ayuda",
		"busco un ingeniero de datos",
	}

	var progressOut bytes.Buffer
	results, err := runBatch(context.Background(), assistant, queries, 2, newBatchProgress(&progressOut, len(queries)))
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i, result := range results {
		require.NotNil(t, result, "query %d", i)
		assert.Equal(t, core.Query(queries[i]), result.Query, "results keep query order")
		assert.False(t, result.Failed())
	}
	assert.Equal(t, core.IntentPeople, results[0].Intent)
	assert.Equal(t, core.IntentGeneric, results[1].Intent)
	assert.Equal(t, core.IntentJobs, results[2].Intent)
	assert.Equal(t, core.IntentHelp, results[3].Intent)
	assert.Equal(t, int32(3), dispatcher.calls.Load())
	assert.Contains(t, progressOut.String(), "5/5 (100.0%), failed: 0")

	sessions, err := assistant.Sessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, len(queries), "each query runs in its own session")
}

func TestRunBatch_InvalidWorkers(t *testing.T) {
	assistant := newTestAssistant(t, &stubDispatcher{})
	_, err := runBatch(context.Background(), assistant, []string{"hola"}, 0, nil)
	assert.ErrorIs(t, err, errInvalidWorkers)
}

func TestReadQueries(t *testing.T) {
	queries, err := readQueries(strings.NewReader("# comentario\nbusco un desarrollador\n\n   \n  ofertas de trabajo  \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"busco un desarrollador", "ofertas de trabajo"}, queries)
}

func TestPrintTurn(t *testing.T) {
	var out bytes.Buffer
	printTurn(&out, &session.TurnResult{ClassifierMessage: "personas:", Reply: "[]"})
	assert.Equal(t, "personas:\n[]\n\n", out.String())

	out.Reset()
	printTurn(&out, &session.TurnResult{ClassifierMessage: "hola", Reply: "hola"})
	assert.Equal(t, "hola\n\n", out.String(), "reply equal to the classifier message is printed once")
}
