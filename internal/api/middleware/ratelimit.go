package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	msgTooManyRequests = "слишком много запросов, попробуйте позже"

	// limiterIdleTTL лимитеры IP, не обращавшихся дольше, удаляются
	limiterIdleTTL = 10 * time.Minute
)

// RateLimiter ограничивает частоту запросов с одного IP (token bucket на каждый адрес).
// Адрес берется из RemoteAddr. X-Forwarded-For учитывается только для соединений от доверенных прокси
type RateLimiter struct {
	mu             sync.Mutex
	limit          rate.Limit
	burst          int
	trustedProxies []netip.Prefix
	limiters       map[string]*ipLimiter
	now            func() time.Time
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создает ограничитель: requestsPerSecond - скорость пополнения, burst - емкость.
// trustedProxies - сети балансировщиков, которым разрешено передавать адрес клиента в X-Forwarded-For
func NewRateLimiter(requestsPerSecond float64, burst int, trustedProxies ...netip.Prefix) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:          rate.Limit(requestsPerSecond),
		burst:          burst,
		trustedProxies: trustedProxies,
		limiters:       make(map[string]*ipLimiter),
		now:            time.Now,
	}
}

// Middleware отвечает 429, если IP исчерпал лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.clientIP(r)) {
			w.Header().Set("Retry-After", "1")
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Allow расходует один токен для ключа
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictIdle(now)

	entry, ok := l.limiters[key]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func (l *RateLimiter) evictIdle(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.limiters, key)
		}
	}
}

// clientIP возвращает адрес, по которому считается лимит.
// Для доверенного прокси цепочка X-Forwarded-For читается справа налево до первого недоверенного адреса:
// левую часть заголовка клиент может подставить сам
func (l *RateLimiter) clientIP(r *http.Request) string {
	remote := remoteHost(r.RemoteAddr)
	if !l.isTrusted(remote) {
		return remote
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			return remote
		}
		if !l.isTrusted(hop) {
			return addr.Unmap().String()
		}
	}
	return remote
}

func (l *RateLimiter) isTrusted(host string) bool {
	if len(l.trustedProxies) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range l.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
