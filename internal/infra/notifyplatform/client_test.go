package notifyplatform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

func TestScheduleTrigger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/triggers" {
			t.Errorf("got %s %s, want POST /api/v1/triggers", r.Method, r.URL.Path)
		}

		var req scheduleTriggerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Content.PlanID != "plan-1" {
			t.Errorf("content.plan_id = %q, want plan-1", req.Content.PlanID)
		}
		if req.Rule.Type != domain.TriggerCalendar {
			t.Errorf("rule.type = %s, want calendar", req.Rule.Type)
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(scheduleTriggerResponse{HandleID: "handle-1"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 0)
	handleID, err := client.ScheduleTrigger(context.Background(),
		domain.NotificationContent{PlanID: "plan-1", Title: "Time for your vitamins", Body: "Vitamin D"},
		domain.NewDailyRule(domain.TimeOfDay{Hour: 8, Minute: 0}),
	)
	if err != nil {
		t.Fatalf("ScheduleTrigger() error = %v", err)
	}
	if handleID != "handle-1" {
		t.Errorf("handleID = %q, want handle-1", handleID)
	}
}

func TestScheduleTriggerErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "queue full"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 0)
	if _, err := client.ScheduleTrigger(context.Background(),
		domain.NotificationContent{PlanID: "plan-1"},
		domain.NewDailyRule(domain.TimeOfDay{Hour: 8, Minute: 0}),
	); err == nil {
		t.Fatal("ScheduleTrigger() error = nil, want error")
	}
}

func TestScheduleTriggerRetriesServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(scheduleTriggerResponse{HandleID: "handle-1"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 2)
	handleID, err := client.ScheduleTrigger(context.Background(),
		domain.NotificationContent{PlanID: "plan-1"},
		domain.NewDailyRule(domain.TimeOfDay{Hour: 8, Minute: 0}),
	)
	if err != nil {
		t.Fatalf("ScheduleTrigger() error = %v", err)
	}
	if handleID != "handle-1" {
		t.Errorf("handleID = %q, want handle-1", handleID)
	}
	if calls != 2 {
		t.Errorf("platform calls = %d, want 2 (one retry)", calls)
	}
}

func TestScheduleTriggerNoRetryWithoutBudget(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 0)
	if _, err := client.ScheduleTrigger(context.Background(),
		domain.NotificationContent{PlanID: "plan-1"},
		domain.NewDailyRule(domain.TimeOfDay{Hour: 8, Minute: 0}),
	); err == nil {
		t.Fatal("ScheduleTrigger() error = nil, want error")
	}
	if calls != 1 {
		t.Errorf("platform calls = %d, want 1", calls)
	}
}

func TestCancelTriggerNotFoundIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("got method %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 0)
	if err := client.CancelTrigger(context.Background(), "gone-handle"); err != nil {
		t.Fatalf("CancelTrigger() error = %v, want nil for 404", err)
	}
}

func TestCancelTriggerServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 0)
	if err := client.CancelTrigger(context.Background(), "handle-1"); err == nil {
		t.Fatal("CancelTrigger() error = nil, want error for 502")
	}
}

func TestListScheduled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/triggers" {
			t.Errorf("got %s %s, want GET /api/v1/triggers", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(listScheduledResponse{
			Triggers: []domain.ScheduledNotification{
				{HandleID: "h1", Content: domain.NotificationContent{PlanID: "plan-1"}},
				{HandleID: "h2", Content: domain.NotificationContent{PlanID: "plan-2"}},
			},
			Count: 2,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 0)
	live, err := client.ListScheduled(context.Background())
	if err != nil {
		t.Fatalf("ListScheduled() error = %v", err)
	}
	if len(live) != 2 || live[0].HandleID != "h1" {
		t.Errorf("live = %v, want two entries starting with h1", live)
	}
}

func TestPermissionState(t *testing.T) {
	tests := []struct {
		name  string
		state string
		want  domain.PermissionState
	}{
		{
			name:  "granted",
			state: "granted",
			want:  domain.PermissionGranted,
		},
		{
			name:  "denied",
			state: "denied",
			want:  domain.PermissionDenied,
		},
		{
			name:  "unknown maps to undetermined",
			state: "provisional",
			want:  domain.PermissionUndetermined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/permission" {
					t.Errorf("got path %s, want /api/v1/permission", r.URL.Path)
				}
				_ = json.NewEncoder(w).Encode(permissionResponse{State: tt.state})
			}))
			defer srv.Close()

			client := NewClient(srv.URL, time.Second, 0)
			state, err := client.PermissionState(context.Background())
			if err != nil {
				t.Fatalf("PermissionState() error = %v", err)
			}
			if state != tt.want {
				t.Errorf("state = %s, want %s", state, tt.want)
			}
		})
	}
}
