package queries

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/risk"
	"storefront/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// AssessRiskQueryHandler classifies a customer phone number from external
// delivery history.
//
// The lookup is advisory: any upstream failure, timeout, or malformed
// payload degrades to an inconclusive "new" assessment instead of an error.
// Conclusive assessments are cached in redis per phone for roughly one
// admin session when a cache client is configured; a nil client disables
// caching without changing behavior.
type AssessRiskQueryHandler struct {
	riskClient ports.RiskClient
	cache      *redis.Client
	cacheTTL   time.Duration
}

// NewAssessRiskQueryHandler creates a handler for risk lookups.
// Pass a nil cache to run without caching.
func NewAssessRiskQueryHandler(
	riskClient ports.RiskClient, cache *redis.Client, cacheTTL time.Duration,
) AssessRiskQueryHandler {
	return AssessRiskQueryHandler{
		riskClient: riskClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Handle executes the risk lookup.
func (h AssessRiskQueryHandler) Handle(ctx context.Context, query AssessRiskQuery) (risk.Assessment, error) {
	if err := query.Validate(); err != nil {
		return risk.Assessment{}, err
	}

	if cached, ok := h.fromCache(ctx, query.Phone()); ok {
		return cached, nil
	}

	history, err := h.riskClient.Lookup(ctx, query.Phone())
	if err != nil {
		slog.Warn("risk lookup failed, returning inconclusive assessment",
			"phone", query.Phone(), "error", err)
		return risk.Inconclusive(query.Phone()), nil
	}

	assessment := risk.Assess(query.Phone(), history)
	h.toCache(ctx, assessment)
	return assessment, nil
}

func (h AssessRiskQueryHandler) fromCache(ctx context.Context, phone string) (risk.Assessment, bool) {
	if h.cache == nil {
		return risk.Assessment{}, false
	}

	payload, err := h.cache.Get(ctx, cacheKey(phone)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("risk cache read failed", "phone", phone, "error", err)
		}
		return risk.Assessment{}, false
	}

	var assessment risk.Assessment
	if err = json.Unmarshal([]byte(payload), &assessment); err != nil {
		return risk.Assessment{}, false
	}
	return assessment, true
}

// toCache stores a conclusive assessment. Inconclusive results are never
// cached so a recovered upstream is consulted on the next lookup.
func (h AssessRiskQueryHandler) toCache(ctx context.Context, assessment risk.Assessment) {
	if h.cache == nil || assessment.Inconclusive {
		return
	}

	payload, err := json.Marshal(assessment)
	if err != nil {
		return
	}

	if err = h.cache.Set(ctx, cacheKey(assessment.Phone), payload, h.cacheTTL).Err(); err != nil {
		slog.Warn("risk cache write failed", "phone", assessment.Phone, "error", err)
	}
}

func cacheKey(phone string) string {
	return "risk:" + phone
}
