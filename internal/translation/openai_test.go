package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func chatReply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"id":"chatcmpl-1","object":"chat.completion","model":"gpt-4o-mini",`+
		`"choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, content)
}

func TestNewOpenAIClient_DefaultModel(t *testing.T) {
	client := NewOpenAIClient("key", "", "")

	assert.Equal(t, openai.GPT4oMini, client.model)
	assert.Equal(t, "openai", client.Name())
}

func TestOpenAIClient_Translate(t *testing.T) {
	var got openai.ChatCompletionRequest
	server := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		chatReply(w, " ciao \n")
	})

	client := NewOpenAIClient("test-key", "gpt-test", server.URL)
	translation, err := client.Translate(context.Background(), Request{Token: "hello", Pair: enIT})

	require.NoError(t, err)
	assert.Equal(t, "ciao", translation)
	assert.Equal(t, "gpt-test", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content, "'hello'")
	assert.Contains(t, got.Messages[0].Content, "'en'")
	assert.Contains(t, got.Messages[0].Content, "'it'")
}

func TestOpenAIClient_MissingKey(t *testing.T) {
	client := NewOpenAIClient("", "", "http://127.0.0.1:0")

	_, err := client.Translate(context.Background(), Request{Token: "hello", Pair: enIT})

	assert.ErrorIs(t, err, ErrProviderClient)
}

func TestOpenAIClient_EmptyAnswer(t *testing.T) {
	server := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, "   ")
	})

	client := NewOpenAIClient("test-key", "", server.URL)
	_, err := client.Translate(context.Background(), Request{Token: "hello", Pair: enIT})

	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestOpenAIClient_HTTPErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, ProviderClientError},
		{"rate limited", http.StatusTooManyRequests, ProviderClientError},
		{"server error", http.StatusInternalServerError, ProviderServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"error":{"message":"nope","type":"invalid_request_error"}}`)
			})

			client := NewOpenAIClient("test-key", "", server.URL)
			_, err := client.Translate(context.Background(), Request{Token: "hello", Pair: enIT})

			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}
