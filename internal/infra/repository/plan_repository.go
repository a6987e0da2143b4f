package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

const planListKey = "reminder:plans"

type planRecord struct {
	ID                  string     `json:"id"`
	Label               string     `json:"label"`
	Category            string     `json:"category,omitempty"`
	Frequency           string     `json:"frequency"`
	CustomDays          []int      `json:"custom_days,omitempty"`
	ReminderHour        int        `json:"reminder_hour"`
	ReminderMinute      int        `json:"reminder_minute"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	NotificationHandles []string   `json:"notification_handles"`
	CreatedDate         time.Time  `json:"created_date"`
}

type planRepository struct {
	client *redis.Client
}

// NewPlanRepository returns a PlanRepository backed by a single JSON array
// under one redis key. Every mutation re-reads the whole list and writes it
// back, so the repository is the sole writer for the duration of a call.
func NewPlanRepository(client *redis.Client) domain.PlanRepository {
	return &planRepository{
		client: client,
	}
}

func (r *planRepository) GetAll(ctx context.Context) ([]*domain.Plan, error) {
	data, err := r.client.Get(ctx, planListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*domain.Plan{}, nil
		}
		return nil, fmt.Errorf("failed to read plan list: %w", err)
	}

	var records []planRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, ErrInvalidPlanData
	}

	plans := make([]*domain.Plan, 0, len(records))
	for _, rec := range records {
		plans = append(plans, recordToPlan(rec))
	}

	return plans, nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*domain.Plan, error) {
	plans, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}

	return nil, domain.ErrPlanNotFound
}

func (r *planRepository) SaveAll(ctx context.Context, plans []*domain.Plan) error {
	records := make([]planRecord, 0, len(plans))
	for _, p := range plans {
		records = append(records, planToRecord(p))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return ErrInvalidPlanData
	}

	if err := r.client.Set(ctx, planListKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write plan list: %w", err)
	}

	return nil
}

func (r *planRepository) Upsert(ctx context.Context, plan *domain.Plan) error {
	plans, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, p := range plans {
		if p.ID == plan.ID {
			plans[i] = plan
			replaced = true
			break
		}
	}
	if !replaced {
		plans = append(plans, plan)
	}

	return r.SaveAll(ctx, plans)
}

func (r *planRepository) Delete(ctx context.Context, id string) error {
	plans, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := make([]*domain.Plan, 0, len(plans))
	found := false
	for _, p := range plans {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}

	if !found {
		return domain.ErrPlanNotFound
	}

	return r.SaveAll(ctx, kept)
}

func planToRecord(p *domain.Plan) planRecord {
	days := make([]int, 0, len(p.CustomDays))
	for _, d := range p.CustomDays {
		days = append(days, int(d))
	}

	return planRecord{
		ID:                  p.ID,
		Label:               p.Label,
		Category:            p.Category,
		Frequency:           p.Frequency.String(),
		CustomDays:          days,
		ReminderHour:        p.ReminderTime.Hour,
		ReminderMinute:      p.ReminderTime.Minute,
		EndDate:             p.EndDate,
		NotificationHandles: p.NotificationHandles,
		CreatedDate:         p.CreatedDate,
	}
}

func recordToPlan(rec planRecord) *domain.Plan {
	days := make([]time.Weekday, 0, len(rec.CustomDays))
	for _, d := range rec.CustomDays {
		days = append(days, time.Weekday(d))
	}

	handles := rec.NotificationHandles
	if handles == nil {
		handles = make([]string, 0)
	}

	return &domain.Plan{
		ID:                  rec.ID,
		Label:               rec.Label,
		Category:            rec.Category,
		Frequency:           domain.Frequency(rec.Frequency),
		CustomDays:          days,
		ReminderTime:        domain.TimeOfDay{Hour: rec.ReminderHour, Minute: rec.ReminderMinute},
		EndDate:             rec.EndDate,
		NotificationHandles: handles,
		CreatedDate:         rec.CreatedDate,
	}
}
