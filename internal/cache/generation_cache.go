package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizforge/backend/internal/models"
)

// GenerationCache stores marshaled generation responses keyed by request
// content. A nil body with a nil error means cache miss.
type GenerationCache interface {
	Get(ctx context.Context, req models.GenerateRequest) ([]byte, error)
	Set(ctx context.Context, req models.GenerateRequest, body []byte) error
}

type generationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGenerationCache(client *redis.Client, ttl time.Duration) GenerationCache {
	return &generationCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *generationCache) Get(ctx context.Context, req models.GenerateRequest) ([]byte, error) {
	body, err := c.client.Get(ctx, requestKey(req)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *generationCache) Set(ctx context.Context, req models.GenerateRequest, body []byte) error {
	return c.client.Set(ctx, requestKey(req), body, c.ttl).Err()
}

// requestKey hashes the fields that determine the response. Targets are
// sorted so equivalent requests share a key regardless of order.
func requestKey(req models.GenerateRequest) string {
	targets := append([]string(nil), req.Targets...)
	sort.Strings(targets)

	canonical, _ := json.Marshal(struct {
		Text    string   `json:"text"`
		Targets []string `json:"targets"`
		Num     int      `json:"num"`
		Lang    string   `json:"lang"`
	}{
		Text:    strings.TrimSpace(req.Text),
		Targets: targets,
		Num:     req.NumQuestions,
		Lang:    req.LanguageHint,
	})

	sum := sha256.Sum256(canonical)
	return "generate:" + hex.EncodeToString(sum[:])
}
