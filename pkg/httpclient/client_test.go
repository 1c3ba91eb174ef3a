package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONAppendsParams(t *testing.T) {
	var gotQuery url.Values
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	params := url.Values{}
	params.Set("api_key", "secret")
	params.Set("language", "pt-BR")

	var out map[string]string
	err := New(time.Second).GetJSON(context.Background(), server.URL+"/path?existing=1", params, &out, WithBearerToken("abc"))
	require.NoError(t, err)

	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "secret", gotQuery.Get("api_key"))
	assert.Equal(t, "pt-BR", gotQuery.Get("language"))
	assert.Equal(t, "1", gotQuery.Get("existing"), "existing query parameters survive")
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestPostJSONSendsBody(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 7})
	}))
	defer server.Close()

	var out map[string]any
	err := New(time.Second).PostJSON(context.Background(), server.URL, map[string]any{"name": "ann"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ann", gotBody["name"])
	assert.Equal(t, float64(7), out["id"])
}

func TestNonSuccessStatusBecomesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"gone"}`))
	}))
	defer server.Close()

	err := New(time.Second).GetJSON(context.Background(), server.URL, nil, nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "gone")
}

func TestDeleteJSONDiscardsBodyWhenOutNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(map[string]string{"message": "removed"})
	}))
	defer server.Close()

	require.NoError(t, New(time.Second).DeleteJSON(context.Background(), server.URL, nil))
}

func TestConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	err := New(time.Second).GetJSON(context.Background(), server.URL, nil, nil)
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr), "transport failures are not status errors")
}
