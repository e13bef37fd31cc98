package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// IdempotencyStore remembers responses to POST requests sent with an
// Idempotency-Key header, so a retried create returns the first result
// instead of allocating another id.
type IdempotencyStore struct {
	mu       sync.Mutex
	entries  map[string]*replay
	ttl      time.Duration
	now      func() time.Time
	stopChan chan struct{}
}

type replay struct {
	status    int
	header    http.Header
	body      []byte
	expiresAt time.Time
	done      chan struct{} // closed once the first request has finished
}

// IdempotencyConfig holds configuration for the idempotency store
type IdempotencyConfig struct {
	TTL     time.Duration // how long a response is replayed (default 24h)
	Cleanup time.Duration // sweep interval (default 1h)
}

// NewIdempotencyStore creates a store and starts its sweeper. Call Stop on shutdown.
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = time.Hour
	}

	s := &IdempotencyStore{
		entries:  make(map[string]*replay),
		ttl:      cfg.TTL,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	go s.sweep(cfg.Cleanup)
	return s
}

// Stop ends the sweeper goroutine
func (s *IdempotencyStore) Stop() {
	close(s.stopChan)
}

func (s *IdempotencyStore) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.dropExpired()
		case <-s.stopChan:
			return
		}
	}
}

func (s *IdempotencyStore) dropExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if isClosed(e.done) && e.expiresAt.Before(now) {
			delete(s.entries, key)
		}
	}
}

// claim returns the entry for key and whether the caller owns it.
// Owners must call finish or release.
func (s *IdempotencyStore) claim(key string) (*replay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		if !isClosed(e.done) || e.expiresAt.After(s.now()) {
			return e, false
		}
	}
	e := &replay{done: make(chan struct{})}
	s.entries[key] = e
	return e, true
}

func (s *IdempotencyStore) finish(e *replay, status int, header http.Header, body []byte) {
	s.mu.Lock()
	e.status = status
	e.header = header
	e.body = body
	e.expiresAt = s.now().Add(s.ttl)
	s.mu.Unlock()
	close(e.done)
}

// release forgets key so the next attempt runs again; used for server errors
func (s *IdempotencyStore) release(key string, e *replay) {
	s.mu.Lock()
	if s.entries[key] == e {
		delete(s.entries, key)
	}
	s.mu.Unlock()
	close(e.done)
}

func isClosed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// idempotencyKey binds the header value to caller, route and body so a key
// reused for a different request does not replay the wrong response
func idempotencyKey(caller, key, method, path string, body []byte) string {
	h := sha256.New()
	for _, part := range []string{caller, key, method, path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// captureWriter tees the response so it can be replayed
type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the first response of a POST carrying an
// Idempotency-Key header. Server errors are not remembered.
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headerKey := r.Header.Get("Idempotency-Key")
			if r.Method != http.MethodPost || headerKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			caller := r.RemoteAddr
			if userID, ok := GetUserID(r.Context()); ok {
				caller = strconv.Itoa(userID)
			}
			key := idempotencyKey(caller, headerKey, r.Method, r.URL.Path, body)

			for {
				entry, owner := store.claim(key)
				if owner {
					cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
					next.ServeHTTP(cw, r)
					if cw.status >= http.StatusInternalServerError {
						store.release(key, entry)
						return
					}
					store.finish(entry, cw.status, cw.Header().Clone(), cw.body.Bytes())
					return
				}

				select {
				case <-entry.done:
				case <-r.Context().Done():
					return
				}
				// the first attempt failed and was released; try to own it
				if entry.status == 0 {
					continue
				}

				for k, vals := range entry.header {
					for _, v := range vals {
						w.Header().Add(k, v)
					}
				}
				w.Header().Set("X-Idempotency-Replayed", "true")
				w.WriteHeader(entry.status)
				_, _ = w.Write(entry.body)
				return
			}
		})
	}
}
