package domain

import "context"

//go:generate mockgen -source=plan_repository.go -destination=plan_repository_mock.go -package=domain

// PlanRepository persists the plan list as a single document.
// Implementations read the whole list, mutate one entry, and write the whole
// list back; there are no field-level updates.
type PlanRepository interface {
	GetAll(ctx context.Context) ([]*Plan, error)
	Get(ctx context.Context, id string) (*Plan, error)
	SaveAll(ctx context.Context, plans []*Plan) error
	Upsert(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id string) error
}
