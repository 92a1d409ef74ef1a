package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/turnherald/internal/dependencies/mocks"
	"github.com/mcoot/turnherald/internal/model"
	"github.com/mcoot/turnherald/internal/testutil"
)

func TestDiscordSinkSend(t *testing.T) {
	var received webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sink := NewDiscordSink(server.URL, mocks.NewMockRandom(), testutil.NopLogger())
	err := sink.Send(context.Background(), model.Notification{
		GameDisplayName: "Emerald Coast",
		Player:          model.Mention{DisplayName: "alice", ChatID: "111111111111111111"},
		RoundNumber:     42,
	})

	require.NoError(t, err)
	assert.Equal(t, `<@111111111111111111> - Your turn in "Emerald Coast" (Round 42)`, received.Content)
}

func TestDiscordSinkRejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid webhook token", http.StatusUnauthorized)
	}))
	defer server.Close()

	sink := NewDiscordSink(server.URL, mocks.NewMockRandom(), testutil.NopLogger())
	err := sink.Send(context.Background(), model.Notification{
		GameDisplayName: "g",
		Player:          model.Mention{DisplayName: "alice"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrSinkDeliveryFailed)
}

func TestDiscordSinkUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	sink := NewDiscordSink(server.URL, mocks.NewMockRandom(), testutil.NopLogger())
	err := sink.Send(context.Background(), model.Notification{
		GameDisplayName: "g",
		Player:          model.Mention{DisplayName: "alice"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrSinkDeliveryFailed)
}
