package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/careloop/formflow/internal/dto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const formInfoTTL = 10 * time.Minute

// FormCache caches form entry info, which is authored content and changes
// rarely. Misses and redis failures both fall through to the database; the
// cache is an optimization, never a source of truth.
type FormCache interface {
	GetFormInfo(formID uint) (*dto.FormInfoDTO, bool)
	SetFormInfo(formID uint, info *dto.FormInfoDTO)
	Invalidate(formID uint)
}

type formCache struct {
	client *redis.Client
}

func NewFormCache(client *redis.Client) FormCache {
	return &formCache{client: client}
}

func formInfoKey(formID uint) string {
	return fmt.Sprintf("form:info:%d", formID)
}

func (c *formCache) GetFormInfo(formID uint) (*dto.FormInfoDTO, bool) {
	data, err := c.client.Get(context.Background(), formInfoKey(formID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Uint("formID", formID).Msg("form cache read failed, falling back to database")
		}
		return nil, false
	}
	var info dto.FormInfoDTO
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		log.Warn().Err(err).Uint("formID", formID).Msg("form cache entry corrupt, dropping it")
		c.Invalidate(formID)
		return nil, false
	}
	return &info, true
}

func (c *formCache) SetFormInfo(formID uint, info *dto.FormInfoDTO) {
	data, err := json.Marshal(info)
	if err != nil {
		log.Warn().Err(err).Uint("formID", formID).Msg("form cache marshal failed")
		return
	}
	if err := c.client.Set(context.Background(), formInfoKey(formID), data, formInfoTTL).Err(); err != nil {
		log.Warn().Err(err).Uint("formID", formID).Msg("form cache write failed")
	}
}

func (c *formCache) Invalidate(formID uint) {
	if err := c.client.Del(context.Background(), formInfoKey(formID)).Err(); err != nil {
		log.Warn().Err(err).Uint("formID", formID).Msg("form cache invalidation failed")
	}
}

// NopFormCache never hits. Tests and cache-less deployments use it.
type NopFormCache struct{}

func (NopFormCache) GetFormInfo(uint) (*dto.FormInfoDTO, bool) { return nil, false }
func (NopFormCache) SetFormInfo(uint, *dto.FormInfoDTO)        {}
func (NopFormCache) Invalidate(uint)                           {}
