package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"hrflow/internal/transport/http/api"
)

// pruneThreshold is the number of tracked keys above which expired windows
// are swept on the next hit.
const pruneThreshold = 4096

// maxPeekBytes bounds how much of a login body is read to find the email.
const maxPeekBytes = 64 << 10

type KeyFunc func(r *http.Request) string

type windowHits struct {
	n       int
	resetAt time.Time
}

type verdict struct {
	limit     int
	remaining int
	resetIn   int
	blocked   bool
}

// fixedWindow allows limit hits per key in each period.
type fixedWindow struct {
	limit  int
	period time.Duration
	key    KeyFunc

	mu   sync.Mutex
	hits map[string]*windowHits
}

func newFixedWindow(limit int, period time.Duration, key KeyFunc) *fixedWindow {
	return &fixedWindow{limit: limit, period: period, key: key, hits: map[string]*windowHits{}}
}

func (fw *fixedWindow) take(key string, now time.Time) verdict {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if len(fw.hits) > pruneThreshold {
		for k, h := range fw.hits {
			if now.After(h.resetAt) {
				delete(fw.hits, k)
			}
		}
	}
	h, ok := fw.hits[key]
	if !ok || now.After(h.resetAt) {
		h = &windowHits{resetAt: now.Add(fw.period)}
		fw.hits[key] = h
	}
	h.n++

	return verdict{
		limit:     fw.limit,
		remaining: max(fw.limit-h.n, 0),
		resetIn:   ceilSeconds(h.resetAt.Sub(now)),
		blocked:   h.n > fw.limit,
	}
}

// admit records the request against its key and writes the 429 response when
// the window is exhausted. It reports whether the request may continue.
func (fw *fixedWindow) admit(w http.ResponseWriter, r *http.Request) bool {
	if fw.limit <= 0 {
		return true
	}
	key := fw.key(r)
	if key == "" {
		key = "ip:" + clientIP(r)
	}
	v := fw.take(key, time.Now())

	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(v.limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(v.remaining))
	h.Set("X-RateLimit-Reset", strconv.Itoa(v.resetIn))
	if !v.blocked {
		return true
	}

	h.Set("Retry-After", strconv.Itoa(max(v.resetIn, 1)))
	slog.Warn("rate limit exceeded", "key", key, "method", r.Method, "path", r.URL.Path, "limit", v.limit)
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

// RateLimit throttles every request, keyed by the signed-in user when there
// is one and by client address otherwise.
func RateLimit(limit int, period time.Duration) func(http.Handler) http.Handler {
	fw := newFixedWindow(limit, period, ActorKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if fw.admit(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

type rateScope int

const (
	scopeNone rateScope = iota
	scopeCredentials
	scopeExpensive
)

// throttledRoutes lists the POST endpoints with tighter budgets. Segments
// written as {id} match any single path segment.
var throttledRoutes = []struct {
	pattern string
	scope   rateScope
}{
	{"/auth/login", scopeCredentials},
	{"/auth/signup", scopeCredentials},
	{"/candidates/parse-resume", scopeExpensive},
	{"/ai/generate-job-description", scopeExpensive},
	{"/jobs/{id}/score", scopeExpensive},
}

func scopeFor(r *http.Request) rateScope {
	if r.Method != http.MethodPost {
		return scopeNone
	}
	path := apiPath(r.URL.Path)
	for _, route := range throttledRoutes {
		if matchRoute(route.pattern, path) {
			return route.scope
		}
	}
	return scopeNone
}

func matchRoute(pattern, path string) bool {
	want := strings.Split(pattern, "/")
	got := strings.Split(path, "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] == "{id}" {
			if got[i] == "" {
				return false
			}
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

// SensitiveMutationRateLimit applies a quarter of base to credential
// endpoints, counted both per address and per submitted email, and half of
// base per user to the model-backed endpoints. Other requests pass through.
func SensitiveMutationRateLimit(base int, period time.Duration) func(http.Handler) http.Handler {
	credentialLimit := max(base/4, 1)
	byAddress := newFixedWindow(credentialLimit, period, AddressKey)
	byEmail := newFixedWindow(credentialLimit, period, EmailKey)
	byActor := newFixedWindow(max(base/2, 1), period, ActorKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch scopeFor(r) {
			case scopeCredentials:
				if !byAddress.admit(w, r) || !byEmail.admit(w, r) {
					return
				}
			case scopeExpensive:
				if !byActor.admit(w, r) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ActorKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.ID > 0 {
		return "user:" + strconv.FormatInt(user.ID, 10)
	}
	return AddressKey(r)
}

func AddressKey(r *http.Request) string {
	return "ip:" + clientIP(r)
}

// EmailKey keys on the lower-cased "email" member of a JSON body and falls
// back to the client address. The body is restored for the next handler.
func EmailKey(r *http.Request) string {
	if r.Body == nil || !strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		return AddressKey(r)
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), r.Body))
	if err != nil {
		return AddressKey(r)
	}
	var body struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(raw, &body) != nil || strings.TrimSpace(body.Email) == "" {
		return AddressKey(r)
	}
	return "email:" + strings.ToLower(strings.TrimSpace(body.Email))
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}

// apiPath strips the /api mount and any trailing slash.
func apiPath(path string) string {
	path = strings.TrimSuffix(strings.TrimSpace(path), "/")
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		path = strings.TrimPrefix(path, "/api")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
