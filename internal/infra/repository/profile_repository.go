package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

const profileKeyPrefix = "reminder:profile:"

type profileRepository struct {
	client *redis.Client
}

// NewProfileRepository returns a ProfileRepository storing one JSON value
// per plan ID. Profiles have no TTL: they live until an explicit user reset.
func NewProfileRepository(client *redis.Client) domain.ProfileRepository {
	return &profileRepository{
		client: client,
	}
}

func (r *profileRepository) Get(ctx context.Context, planID string) (*domain.BehaviorProfile, error) {
	key := profileKeyPrefix + planID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to read behavior profile: %w", err)
	}

	var profile domain.BehaviorProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, ErrInvalidProfileData
	}

	return &profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *domain.BehaviorProfile) error {
	if profile == nil || profile.PlanID == "" {
		return ErrInvalidProfileData
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return ErrInvalidProfileData
	}

	key := profileKeyPrefix + profile.PlanID
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write behavior profile: %w", err)
	}

	return nil
}

func (r *profileRepository) Delete(ctx context.Context, planID string) error {
	key := profileKeyPrefix + planID
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete behavior profile: %w", err)
	}
	return nil
}
