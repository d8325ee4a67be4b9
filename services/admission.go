package services

import (
	"context"
	"sync"
	"time"

	"signal/analytics/config"
	"signal/analytics/domain"

	"go.uber.org/zap"
)

// Denial reasons reported in the 429 body.
const (
	ReasonRateLimit = "RATE_LIMIT"
	ReasonBot       = "BOT"

	decisionSource = "protection"
)

// RateLimiter counts a request against the caller's fixed window and reports
// whether it stays within the threshold.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AdmissionService gates ingest requests with a per-IP fixed-window rate
// limit and a bot classifier. Both checks run only when a protection key is
// configured and the environment is not local; on any limiter error the
// request is admitted (fail-open).
type AdmissionService struct {
	enabled bool
	limiter RateLimiter
	bots    *BotClassifier
	log     *zap.SugaredLogger
}

var _ domain.AdmissionController = &AdmissionService{}

// NewAdmissionService builds the admission controller. The limiter is
// injectable so deployments can share counters via Redis.
func NewAdmissionService(cfg *config.Config, limiter RateLimiter, log *zap.SugaredLogger) *AdmissionService {
	return &AdmissionService{
		enabled: cfg.ProtectionEnabled(),
		limiter: limiter,
		bots:    NewBotClassifier(),
		log:     log,
	}
}

// Admit decides whether a request may proceed to enrichment.
func (s *AdmissionService) Admit(ctx context.Context, sourceIP string, meta domain.RequestMeta) domain.RateLimitDecision {
	if !s.enabled {
		return domain.RateLimitDecision{Allowed: true}
	}

	ok, err := s.limiter.Allow(ctx, sourceIP)
	if err != nil {
		s.log.Warnw("rate limit check failed, admitting request",
			"error", err,
			"source_ip", sourceIP,
		)
	} else if !ok {
		return domain.RateLimitDecision{
			Allowed: false,
			Source:  decisionSource,
			Reason:  ReasonRateLimit,
		}
	}

	if category, bot := s.bots.Classify(meta); bot && !allowedBotCategories[category] {
		s.log.Infow("bot traffic denied",
			"category", category,
			"source_ip", sourceIP,
			"user_agent", meta.UserAgent,
		)
		return domain.RateLimitDecision{
			Allowed: false,
			Source:  decisionSource,
			Reason:  ReasonBot,
		}
	}

	return domain.RateLimitDecision{Allowed: true}
}

// WindowLimiter is the in-process fixed-window limiter: a mutex-guarded map
// from key to (windowStart, count). Stale entries are swept lazily once per
// window so the table stays bounded under churning IPs.
type WindowLimiter struct {
	window time.Duration
	max    int
	now    func() time.Time

	mu        sync.Mutex
	entries   map[string]*windowEntry
	lastSweep time.Time
}

type windowEntry struct {
	windowStart time.Time
	count       int
}

// NewWindowLimiter creates an in-memory limiter allowing max requests per
// key per window.
func NewWindowLimiter(window time.Duration, max int) *WindowLimiter {
	return &WindowLimiter{
		window:  window,
		max:     max,
		now:     time.Now,
		entries: make(map[string]*windowEntry),
	}
}

// Allow counts one request for key and reports whether the active window is
// still within the threshold. The error return is always nil; it exists to
// satisfy RateLimiter alongside the Redis-backed variant.
func (l *WindowLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(now)

	entry, ok := l.entries[key]
	if !ok || now.Sub(entry.windowStart) >= l.window {
		l.entries[key] = &windowEntry{windowStart: now, count: 1}
		return true, nil
	}

	entry.count++
	return entry.count <= l.max, nil
}

func (l *WindowLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, entry := range l.entries {
		if now.Sub(entry.windowStart) >= l.window {
			delete(l.entries, key)
		}
	}
	l.lastSweep = now
}

// allowedBotCategories are the benign automated-traffic categories admitted
// despite classifying as bots.
var allowedBotCategories = map[string]bool{
	CategorySearchEngine: true,
	CategoryPreview:      true,
	CategoryMonitor:      true,
	CategoryAI:           true,
}
