package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// KnownLanguages are the language codes accepted by MyMemoryServer
var KnownLanguages = map[string]bool{
	"en": true, "it": true, "fr": true, "es": true, "ru": true, "de": true,
}

// MyMemoryServer is a fake MyMemory lookup endpoint. Unless configured
// otherwise it answers every token with two matches, the second one being
// FakeTranslation(token, target).
type MyMemoryServer struct {
	*httptest.Server

	mu          sync.Mutex
	calls       []string
	statuses    map[string]int
	bodies      map[string]string
	delays      map[string]time.Duration
	delay       time.Duration
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

// NewMyMemoryServer starts a fake MyMemory server, closed on test cleanup
func NewMyMemoryServer(t *testing.T) *MyMemoryServer {
	t.Helper()

	s := &MyMemoryServer{
		statuses: make(map[string]int),
		bodies:   make(map[string]string),
		delays:   make(map[string]time.Duration),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// FakeTranslation is the translation the fake server returns for token
func FakeTranslation(token, target string) string {
	return fmt.Sprintf("%s_%s", target, strings.ToUpper(token))
}

// FailToken makes the server answer token with the given HTTP status
func (s *MyMemoryServer) FailToken(token string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[token] = status
}

// RawBody makes the server answer token with body and HTTP 200
func (s *MyMemoryServer) RawBody(token, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies[token] = body
}

// DelayToken delays the answer for token
func (s *MyMemoryServer) DelayToken(token string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[token] = d
}

// SetDelay delays every answer by d
func (s *MyMemoryServer) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Calls returns the tokens requested so far, in arrival order
func (s *MyMemoryServer) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// MaxInFlight returns the highest number of requests served concurrently
func (s *MyMemoryServer) MaxInFlight() int {
	return int(s.maxInFlight.Load())
}

func (s *MyMemoryServer) handle(w http.ResponseWriter, r *http.Request) {
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		seen := s.maxInFlight.Load()
		if current <= seen || s.maxInFlight.CompareAndSwap(seen, current) {
			break
		}
	}

	token := r.URL.Query().Get("q")
	source, target, _ := strings.Cut(r.URL.Query().Get("langpair"), "|")

	s.mu.Lock()
	s.calls = append(s.calls, token)
	status, failing := s.statuses[token]
	body, raw := s.bodies[token]
	delay := s.delay
	if d, ok := s.delays[token]; ok {
		delay = d
	}
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case failing:
		w.WriteHeader(status)
		fmt.Fprintf(w, "fake failure for %s", token)
	case raw:
		fmt.Fprint(w, body)
	case !KnownLanguages[source]:
		writeJSON(w, "403", fmt.Sprintf("'%s' IS AN INVALID SOURCE LANGUAGE", strings.ToUpper(source)), nil)
	case !KnownLanguages[target]:
		writeJSON(w, "403", fmt.Sprintf("'%s' IS AN INVALID TARGET LANGUAGE", strings.ToUpper(target)), nil)
	case source == target:
		writeJSON(w, "403", "PLEASE SELECT TWO DISTINCT LANGUAGES", nil)
	default:
		writeJSON(w, 200, "", []map[string]string{
			{"translation": token},
			{"translation": FakeTranslation(token, target)},
		})
	}
}

func writeJSON(w http.ResponseWriter, status any, details string, matches []map[string]string) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"responseStatus":  status,
		"responseDetails": details,
		"matches":         matches,
	})
}
