package settlement

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardroom.dev/server/game"
)

func TestNotifyHandStarted(t *testing.T) {
	var gotPath string
	var gotPayload handStartedPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, err := ioutil.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, jsoniter.Unmarshal(body, &gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewHTTPNotifier(server.URL)
	err := notifier.NotifyHandStarted(context.Background(), "table-1", []string{"alice", "bob"}, "commit-hash")
	require.NoError(t, err)

	assert.Equal(t, "/internal/hand-started", gotPath)
	assert.Equal(t, "table-1", gotPayload.TableID)
	assert.Equal(t, []string{"alice", "bob"}, gotPayload.PlayerIDs)
	assert.Equal(t, "commit-hash", gotPayload.SeedCommitment)
}

func TestNotifyAction(t *testing.T) {
	var gotPayload actionPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := ioutil.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, jsoniter.Unmarshal(body, &gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewHTTPNotifier(server.URL)
	err := notifier.NotifyAction(context.Background(), "table-1", "alice", game.ActionRaise, 60)
	require.NoError(t, err)

	assert.Equal(t, game.ActionRaise, gotPayload.Action)
	assert.Equal(t, int64(60), gotPayload.Amount)
}

func TestNotifyHandFinishedGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewHTTPNotifier(server.URL)
	err := notifier.NotifyHandFinished(context.Background(), "table-1", map[string]int64{"alice": 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNotifyRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	notifier := NewHTTPNotifier(server.URL)
	err := notifier.NotifyHandFinished(ctx, "table-1", nil)
	assert.Error(t, err)
}
