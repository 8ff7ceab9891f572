// Package archive persists battle reports outside the game store so older
// turns survive restarts.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/gravitas-games/hexboard/pkg/models"
)

// Archive stores battle reports per game.
type Archive interface {
	Append(ctx context.Context, gameID string, reports ...models.BattleReport) error
	Load(ctx context.Context, gameID string) ([]models.BattleReport, error)
}

// RedisArchive keeps each game's reports as JSON entries of a Redis list.
type RedisArchive struct {
	client *redis.Client
	prefix string
}

// NewRedisArchive creates an archive using keys "<prefix><gameID>".
func NewRedisArchive(client *redis.Client, prefix string) *RedisArchive {
	return &RedisArchive{client: client, prefix: prefix}
}

func (a *RedisArchive) key(gameID string) string {
	return a.prefix + gameID
}

// Append pushes reports onto the end of the game's list.
func (a *RedisArchive) Append(ctx context.Context, gameID string, reports ...models.BattleReport) error {
	if len(reports) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(reports))
	for _, r := range reports {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to encode report for %s turn %d: %w", r.Habitat, r.Turn, err)
		}
		values = append(values, data)
	}
	if err := a.client.RPush(ctx, a.key(gameID), values...).Err(); err != nil {
		return fmt.Errorf("failed to archive reports: %w", err)
	}
	return nil
}

// Load returns every archived report in append order. Entries that no
// longer decode are skipped with a warning.
func (a *RedisArchive) Load(ctx context.Context, gameID string) ([]models.BattleReport, error) {
	raw, err := a.client.LRange(ctx, a.key(gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load archived reports: %w", err)
	}
	out := make([]models.BattleReport, 0, len(raw))
	for i, entry := range raw {
		var r models.BattleReport
		if err := json.Unmarshal([]byte(entry), &r); err != nil {
			log.Printf("Warning: skipping archived report %d of %s: %v", i, gameID, err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// MemoryArchive is an in-process archive for tests and Redis-less runs.
type MemoryArchive struct {
	mu      sync.RWMutex
	reports map[string][]models.BattleReport
}

// NewMemoryArchive creates an empty in-memory archive.
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{reports: make(map[string][]models.BattleReport)}
}

// Append stores reports for a game.
func (a *MemoryArchive) Append(_ context.Context, gameID string, reports ...models.BattleReport) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reports[gameID] = append(a.reports[gameID], reports...)
	return nil
}

// Load returns a copy of the stored reports.
func (a *MemoryArchive) Load(_ context.Context, gameID string) ([]models.BattleReport, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]models.BattleReport(nil), a.reports[gameID]...), nil
}
