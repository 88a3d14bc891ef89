package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Tap30/beacon-go/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetHTTPAdapter_Send(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(data, &body))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	messages := sampleMessages()
	sentAt := time.UnixMilli(1700000042000)
	for _, m := range messages {
		m.SetSentAt(sentAt)
	}

	adapter := NewNetHTTPAdapter(5 * time.Second)
	resp, err := adapter.Send(context.Background(), server.URL, messages, map[string]string{"X-API-Key": "test-key"})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusOK, resp.Status)

	assert.Equal(t, "2023-11-14T22:14:02Z", body["sentAt"])
	batch, ok := body["batch"].([]any)
	require.True(t, ok)
	require.Len(t, batch, 2)
	first := batch[0].(map[string]any)
	assert.Equal(t, "track", first["type"])
	assert.Equal(t, "mobile", first["channel"])
	assert.Equal(t, "2023-11-14T22:14:02Z", first["sentAt"])
	assert.Equal(t, "2023-11-14T22:13:20Z", first["timestamp"])
}

func TestNetHTTPAdapter_SendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewNetHTTPAdapter(0)
	resp, err := adapter.Send(context.Background(), server.URL, sampleMessages(), nil)
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestNetHTTPAdapter_SendInvalidURL(t *testing.T) {
	adapter := NewNetHTTPAdapter(time.Second)
	_, err := adapter.Send(context.Background(), "http://127.0.0.1:1/batch", sampleMessages(), nil)
	assert.Error(t, err)
}

func TestNetHTTPAdapter_SendCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	adapter := NewNetHTTPAdapter(0)
	_, err := adapter.Send(ctx, server.URL, sampleMessages(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNetHTTPAdapter_SendMarshalError(t *testing.T) {
	adapter := NewNetHTTPAdapter(0)
	messages := []Message{
		payload.NewTrack("anon", nil, "", payload.Options{}, "bad", payload.Properties{"invalid": make(chan int)}),
	}
	_, err := adapter.Send(context.Background(), "http://test.com", messages, nil)
	assert.Error(t, err)
}
