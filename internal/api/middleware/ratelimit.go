package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/domain"
)

const (
	msgRateLimited        = "слишком много запросов, попробуйте позже"
	msgRateLimiterFailure = "сервис временно недоступен"
)

// ErrUnexpectedReply ответ Redis не число
var ErrUnexpectedReply = errors.New("ratelimit: unexpected redis reply")

// Limiter счетчик запросов в фиксированном окне.
// Allow увеличивает счетчик ключа и сообщает, укладывается ли запрос в лимит.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Scope кому применяется политика
type Scope int

const (
	ScopeEveryone Scope = iota
	ScopeClients
	ScopeAdmins
)

// Policy именованный лимит.
// TrustProxy включается только за reverse proxy, который сам дописывает X-Forwarded-For:
// тогда адресом клиента считается последний элемент заголовка.
type Policy struct {
	Name       string
	Requests   int
	Window     time.Duration
	Scope      Scope
	TrustProxy bool
}

// RateLimitRecorder счетчик отклоненных запросов
type RateLimitRecorder interface {
	RecordRateLimited(policy string)
}

// RateLimit ограничивает запросы по ключу user:<id>, либо ip:<addr> для анонимных.
// При ошибке хранилища failOpen пропускает запрос, иначе отвечает 503.
func RateLimit(limiter Limiter, policy Policy, recorder RateLimitRecorder, failOpen bool, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, authenticated := GetActor(r.Context())
			if !policy.applies(actor, authenticated) {
				next.ServeHTTP(w, r)
				return
			}

			key := policy.Name + ":" + identity(r, actor, authenticated, policy.TrustProxy)

			allowed, err := limiter.Allow(r.Context(), key, policy.Requests, policy.Window)
			if err != nil {
				log.Warn("RateLimit: policy=%s key=%s limiter error: %v", policy.Name, key, err)
				if failOpen {
					next.ServeHTTP(w, r)
					return
				}
				handlers.RespondError(w, http.StatusServiceUnavailable, msgRateLimiterFailure)
				return
			}

			if !allowed {
				recorder.RecordRateLimited(policy.Name)
				log.Warn("RateLimit: policy=%s key=%s exceeded %d requests per %s",
					policy.Name, key, policy.Requests, policy.Window)
				w.Header().Set("Retry-After", strconv.Itoa(int(policy.Window.Seconds())))
				handlers.RespondTooManyRequests(w, msgRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (p Policy) applies(actor domain.Actor, authenticated bool) bool {
	switch p.Scope {
	case ScopeClients:
		return authenticated && !actor.Role.IsAdmin()
	case ScopeAdmins:
		return authenticated && actor.Role.IsAdmin()
	default:
		return true
	}
}

func identity(r *http.Request, actor domain.Actor, authenticated, trustProxy bool) string {
	if authenticated {
		return "user:" + actor.ID.String()
	}

	// Левые элементы X-Forwarded-For задает сам клиент, доверять можно только добавленному прокси
	if trustProxy {
		if forwarded := r.Header.Values("X-Forwarded-For"); len(forwarded) > 0 {
			hops := strings.Split(forwarded[len(forwarded)-1], ",")
			if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
				return "ip:" + last
			}
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return "ip:" + host
	}
	return "ip:" + r.RemoteAddr
}

// RedisLimiter фиксированное окно в Redis: счетчики общие для всех экземпляров сервиса
type RedisLimiter struct {
	client redis.Scripter
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// NewRedisLimiter создает лимитер поверх Redis
func NewRedisLimiter(client redis.Scripter, prefix string) *RedisLimiter {
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = "rl"
	}
	return &RedisLimiter{client: client, prefix: prefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	res, err := fixedWindowScript.Run(ctx, l.client, []string{l.prefix + ":" + key}, window.Milliseconds()).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit: run script: %w", err)
	}

	count, ok := res.(int64)
	if !ok {
		return false, fmt.Errorf("%w: %T", ErrUnexpectedReply, res)
	}

	return count <= int64(limit), nil
}

// sweepInterval как часто MemoryLimiter чистит истекшие окна
const sweepInterval = time.Minute

// MemoryLimiter фиксированное окно в памяти процесса.
// Корректен только при одном экземпляре сервиса.
type MemoryLimiter struct {
	mu        sync.Mutex
	windows   map[string]*counter
	now       func() time.Time
	lastSweep time.Time
}

type counter struct {
	count   int
	resetAt time.Time
}

// NewMemoryLimiter создает лимитер в памяти
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*counter),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.evictExpired(now)
		l.lastSweep = now
	}

	c, ok := l.windows[key]
	if !ok || !now.Before(c.resetAt) {
		l.windows[key] = &counter{count: 1, resetAt: now.Add(window)}
		return limit > 0, nil
	}

	c.count++
	return c.count <= limit, nil
}

// evictExpired убирает истекшие окна, чтобы карта не росла бесконечно
func (l *MemoryLimiter) evictExpired(now time.Time) {
	for key, c := range l.windows {
		if !now.Before(c.resetAt) {
			delete(l.windows, key)
		}
	}
}
