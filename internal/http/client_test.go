package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"products":[]}`))
	}))
	defer srv.Close()

	c := NewClient("", 0)
	body, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, `{"products":[]}`, string(body))
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestClient_GetStatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok", http.StatusOK, false},
		{"created", http.StatusCreated, false},
		{"no content", http.StatusNoContent, false},
		{"not modified", http.StatusNotModified, true},
		{"not found", http.StatusNotFound, true},
		{"server error", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewClient("test-agent", 0).Get(context.Background(), srv.URL)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr), "expected *StatusError, got %v", err)
			assert.Equal(t, tt.status, statusErr.Code)
			assert.Equal(t, srv.URL, statusErr.URL)
		})
	}
}

func TestClient_GetStream(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 20000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	stream, err := NewClient("", 0).GetStream(context.Background(), srv.URL)
	require.NoError(t, err)
	defer stream.Body.Close()

	data, err := io.ReadAll(stream.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient("", 0).Get(context.Background(), url)
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestProgressWriter(t *testing.T) {
	var buf bytes.Buffer
	var calls []int64

	pw := &ProgressWriter{
		Writer: &buf,
		Total:  10,
		OnUpdate: func(written, total int64) {
			calls = append(calls, written)
			assert.Equal(t, int64(10), total)
		},
	}

	pw.Write([]byte("hello"))
	pw.Write([]byte("world"))

	assert.Equal(t, "helloworld", buf.String())
	assert.Equal(t, []int64{5, 10}, calls)
	assert.Equal(t, int64(10), pw.Written)
}
