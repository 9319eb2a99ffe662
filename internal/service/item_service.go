package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"salelog/internal/dto"
	"salelog/internal/model"
	"salelog/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const itemCachePrefix = "item:"

// DefaultItems is the catalog created on first start.
var DefaultItems = []model.Item{
	{Name: "白玉団子（黒蜜きなこ）", Price: 200},
	{Name: "白玉団子（みたらし）", Price: 200},
	{Name: "白玉団子（あんこ）", Price: 200},
}

// ItemService manages the catalog. Single-item reads go through Redis
// because every recorded sale looks its item up.
type ItemService interface {
	Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ItemResponse, error)
	List(ctx context.Context) ([]dto.ItemResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	Delete(ctx context.Context, id uint) error
	// SeedDefaults inserts DefaultItems when the catalog is empty and
	// reports how many were created.
	SeedDefaults(ctx context.Context) (int, error)
}

type itemService struct {
	repo repository.ItemRepository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewItemService creates the service. rdb may be nil, which disables caching.
func NewItemService(repo repository.ItemRepository, rdb *redis.Client, ttl time.Duration) ItemService {
	return &itemService{repo: repo, rdb: rdb, ttl: ttl}
}

func (s *itemService) Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	it := &model.Item{Name: req.Name, Price: *req.Price}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	resp := itemResponse(it)
	return &resp, nil
}

func (s *itemService) GetByID(ctx context.Context, id uint) (*dto.ItemResponse, error) {
	key := itemCachePrefix + strconv.FormatUint(uint64(id), 10)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var resp dto.ItemResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	it, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	resp := itemResponse(it)

	// Best effort; a cache failure never fails the read.
	if s.rdb != nil {
		if b, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, b, s.ttl).Err(); err != nil {
				log.Warn().Err(err).Uint("item_id", id).Msg("item cache write failed")
			}
		}
	}
	return &resp, nil
}

func (s *itemService) List(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	out := make([]dto.ItemResponse, len(items))
	for i := range items {
		out[i] = itemResponse(&items[i])
	}
	return out, nil
}

func (s *itemService) Update(ctx context.Context, id uint, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	it, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Price != nil {
		it.Price = *req.Price
	}
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	s.invalidate(ctx, id)
	resp := itemResponse(it)
	return &resp, nil
}

func (s *itemService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *itemService) SeedDefaults(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	items := make([]model.Item, len(DefaultItems))
	copy(items, DefaultItems)
	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return 0, fmt.Errorf("seed items: %w", err)
	}
	log.Info().Int("count", len(items)).Msg("default catalog seeded")
	return len(items), nil
}

func (s *itemService) invalidate(ctx context.Context, id uint) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, itemCachePrefix+strconv.FormatUint(uint64(id), 10)).Err(); err != nil {
		log.Warn().Err(err).Uint("item_id", id).Msg("item cache invalidation failed")
	}
}

func itemResponse(it *model.Item) dto.ItemResponse {
	return dto.ItemResponse{ID: it.ID, Name: it.Name, Price: it.Price}
}
