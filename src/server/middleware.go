package server

import (
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ClientIdleTimeout is how long a client's bucket survives without requests.
const ClientIdleTimeout = 3 * time.Minute

// RateLimiter throttles calculation traffic with one token bucket per client.
// The client is the TCP peer unless the peer is a trusted proxy, in which case
// the forwarding headers name it.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[netip.Addr]*clientBucket
	rate    rate.Limit
	burst   int
	trusted []netip.Prefix
	done    chan struct{}
	stop    sync.Once
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(r rate.Limit, burst int, trustedProxies []netip.Prefix) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[netip.Addr]*clientBucket),
		rate:    r,
		burst:   burst,
		trusted: trustedProxies,
		done:    make(chan struct{}),
	}
	go rl.sweep(time.Minute)
	return rl
}

// sweep drops idle buckets until Stop is called.
func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			rl.dropIdle(now)
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) dropIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for addr, bucket := range rl.clients {
		if now.Sub(bucket.lastSeen) > ClientIdleTimeout {
			delete(rl.clients, addr)
		}
	}
}

// Stop is idempotent.
func (rl *RateLimiter) Stop() {
	rl.stop.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) allow(client netip.Addr) bool {
	rl.mu.Lock()
	bucket, ok := rl.clients[client]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[client] = bucket
	}
	bucket.lastSeen = time.Now()
	rl.mu.Unlock()
	return bucket.limiter.Allow()
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(rl.clientAddr(r)) {
			RateLimitExceeded.Inc()
			writeJSON(w, http.StatusTooManyRequests, errorResponse{
				Error: "too many requests",
				Kind:  "rate_limited",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) isTrusted(addr netip.Addr) bool {
	for _, prefix := range rl.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// clientAddr walks X-Forwarded-For from the right, past trusted proxies, and
// stops at the first hop it does not trust. Headers from an untrusted peer
// are ignored.
func (rl *RateLimiter) clientAddr(r *http.Request) netip.Addr {
	peer := peerAddr(r)
	if !peer.IsValid() || !rl.isTrusted(peer) {
		return peer
	}
	if forwarded := r.Header.Values("X-Forwarded-For"); len(forwarded) > 0 {
		hops := strings.Split(strings.Join(forwarded, ","), ",")
		client := peer
		for i := len(hops) - 1; i >= 0; i-- {
			hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				break
			}
			client = hop.Unmap()
			if !rl.isTrusted(client) {
				break
			}
		}
		return client
	}
	if realIP, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return realIP.Unmap()
	}
	return peer
}

// peerAddr is the address of the TCP peer, or the zero Addr when RemoteAddr
// cannot be parsed.
func peerAddr(r *http.Request) netip.Addr {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}
	}
	return addr.Unmap()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	return rec.ResponseWriter.Write(b)
}

const RequestIDHeader = "X-Request-ID"

// instrument logs and counts every request under the given route label. It
// echoes the caller's request ID or assigns a new ULID.
func instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = ulid.Make().String()
		}
		w.Header().Set(RequestIDHeader, requestID)
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		duration := time.Since(start)

		RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
		log.Info().
			Str("request_id", requestID).
			Str("route", route).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("http request")
	})
}
