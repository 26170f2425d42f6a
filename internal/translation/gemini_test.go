package translation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "", "")

	assert.Error(t, err)
}

func TestGeminiClient_Translate(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"ciao\n"}]}}]}`)
	}))
	defer server.Close()

	client, err := NewGeminiClient(context.Background(), "test-key", "", server.URL)
	require.NoError(t, err)
	assert.Equal(t, "gemini", client.Name())

	got, err := client.Translate(context.Background(), Request{Token: "hello", Pair: enIT})

	require.NoError(t, err)
	assert.Equal(t, "ciao", got)
	assert.True(t, strings.HasSuffix(path, defaultGeminiModel+":generateContent"), path)
}

func TestGeminiClient_EmptyAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	client, err := NewGeminiClient(context.Background(), "test-key", "", server.URL)
	require.NoError(t, err)

	_, err = client.Translate(context.Background(), Request{Token: "hello", Pair: enIT})

	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGeminiClient_BadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"code":400,"message":"bad language","status":"INVALID_ARGUMENT"}}`)
	}))
	defer server.Close()

	client, err := NewGeminiClient(context.Background(), "test-key", "", server.URL)
	require.NoError(t, err)

	_, err = client.Translate(context.Background(), Request{Token: "hello", Pair: enIT})

	require.Error(t, err)
	assert.Equal(t, ProviderClientError, KindOf(err))
}
