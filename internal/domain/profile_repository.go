package domain

import "context"

//go:generate mockgen -source=profile_repository.go -destination=profile_repository_mock.go -package=domain

// ProfileRepository persists one BehaviorProfile per plan.
type ProfileRepository interface {
	Get(ctx context.Context, planID string) (*BehaviorProfile, error)
	Save(ctx context.Context, profile *BehaviorProfile) error
	Delete(ctx context.Context, planID string) error
}
