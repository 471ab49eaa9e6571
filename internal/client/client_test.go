package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roseboard/backend/internal/localstore"
)

var quietLogger = log.New(io.Discard)

func TestFetchMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/eod-message", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(Message{Message: "Rest well.", Date: "Thu Jan 02 2025"})
	}))
	defer server.Close()

	msg, err := New(server.URL, "").FetchMessage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Rest well.", msg.Message)
	assert.Equal(t, "Thu Jan 02 2025", msg.Date)
}

func TestFetchMessageDecodesErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"internal_error","message":"boom"}}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "").FetchMessage(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "internal_error", apiErr.Code)
}

func TestAddFocusMinutesSendsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/me/focus", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 25, body["minutes"])
		_, _ = w.Write([]byte(`{"profile":{}}`))
	}))
	defer server.Close()

	require.NoError(t, New(server.URL, "tok").AddFocusMinutes(context.Background(), 25))
}

type stubFetcher struct {
	calls atomic.Int32
	msg   Message
	err   error
}

func (f *stubFetcher) FetchMessage(context.Context) (Message, error) {
	f.calls.Add(1)
	return f.msg, f.err
}

func TestDailyMessageFetchesOncePerDay(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	fetcher := &stubFetcher{msg: Message{Message: "Today was enough.", Date: "Thu Jan 02 2025"}}
	ctx := context.Background()

	assert.Equal(t, "Today was enough.", DailyMessage(ctx, store, fetcher, "Thu Jan 02 2025", quietLogger))
	assert.Equal(t, "Today was enough.", DailyMessage(ctx, store, fetcher, "Thu Jan 02 2025", quietLogger))
	assert.Equal(t, int32(1), fetcher.calls.Load())

	fetcher.msg = Message{Message: "A new day.", Date: "Fri Jan 03 2025"}
	assert.Equal(t, "A new day.", DailyMessage(ctx, store, fetcher, "Fri Jan 03 2025", quietLogger))
	assert.Equal(t, int32(2), fetcher.calls.Load())

	message, date := store.CachedMessage()
	assert.Equal(t, "A new day.", message)
	assert.Equal(t, "Fri Jan 03 2025", date)
}

func TestDailyMessageFallbackIsNotCached(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.CacheMessage("Yesterday's words.", "Wed Jan 01 2025"))
	fetcher := &stubFetcher{err: errors.New("offline")}
	ctx := context.Background()

	assert.Equal(t, FallbackMessage, DailyMessage(ctx, store, fetcher, "Thu Jan 02 2025", quietLogger))

	message, date := store.CachedMessage()
	assert.Equal(t, "Yesterday's words.", message)
	assert.Equal(t, "Wed Jan 01 2025", date)

	fetcher.err = nil
	fetcher.msg = Message{Message: "Back online.", Date: "Thu Jan 02 2025"}
	assert.Equal(t, "Back online.", DailyMessage(ctx, store, fetcher, "Thu Jan 02 2025", quietLogger))
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestFocusReporterGuestMode(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	report := FocusReporter(New("http://127.0.0.1:0", ""), store, quietLogger)
	report(25)
	report(5)

	assert.Equal(t, 30, store.GuestFocusMinutes())
}

func TestFocusReporterSignedIn(t *testing.T) {
	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int
		_ = json.NewDecoder(r.Body).Decode(&body)
		received.Add(int32(body["minutes"]))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	report := FocusReporter(New(server.URL, "tok"), store, quietLogger)
	report(25)

	assert.Equal(t, int32(25), received.Load())
	assert.Zero(t, store.GuestFocusMinutes())
}
