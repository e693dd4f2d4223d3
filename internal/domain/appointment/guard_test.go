package appointment

import (
	"context"
	"testing"
	"time"
)

type mockAppointmentRepository struct {
	appointments []*Appointment
}

func (m *mockAppointmentRepository) Create(ctx context.Context, appt *Appointment) error {
	appt.ID = uint(len(m.appointments) + 1)
	stored := *appt
	m.appointments = append(m.appointments, &stored)
	return nil
}

func (m *mockAppointmentRepository) FindByPublicID(ctx context.Context, publicID string) (*Appointment, error) {
	for _, appt := range m.appointments {
		if appt.PublicID == publicID {
			a := *appt
			return &a, nil
		}
	}
	return nil, nil
}

func (m *mockAppointmentRepository) FindByExternalID(ctx context.Context, externalID string) (*Appointment, error) {
	for _, appt := range m.appointments {
		if appt.ExternalID != nil && *appt.ExternalID == externalID {
			a := *appt
			return &a, nil
		}
	}
	return nil, nil
}

func (m *mockAppointmentRepository) FindBooked(ctx context.Context, from, to time.Time) ([]*Appointment, error) {
	var out []*Appointment
	for _, appt := range m.appointments {
		if appt.Status == AppointmentStatusCancelled {
			continue
		}
		if appt.ScheduledAt.Before(from) || !appt.ScheduledAt.Before(to) {
			continue
		}
		a := *appt
		out = append(out, &a)
	}
	return out, nil
}

func (m *mockAppointmentRepository) Update(ctx context.Context, appt *Appointment) error {
	for i, stored := range m.appointments {
		if stored.ID == appt.ID {
			a := *appt
			m.appointments[i] = &a
			return nil
		}
	}
	return nil
}

func (m *mockAppointmentRepository) CompletePast(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	for _, appt := range m.appointments {
		if appt.Status == AppointmentStatusScheduled && appt.ScheduledAt.Before(before) {
			appt.Status = AppointmentStatusCompleted
			n++
		}
	}
	return n, nil
}

func newTestGuard() (*Guard, *mockAppointmentRepository) {
	repo := &mockAppointmentRepository{}
	guard := NewGuard(repo, GuardConfig{
		Slots:           []string{"8:30 AM", "8:45 AM", "9:00 AM"},
		Location:        time.UTC,
		DefaultDuration: 30 * time.Minute,
	})
	return guard, repo
}

func slotTime(t *testing.T, day time.Time, slot string) time.Time {
	t.Helper()
	at, err := time.Parse("3:04 PM", slot)
	if err != nil {
		t.Fatalf("bad slot %q: %v", slot, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), at.Hour(), at.Minute(), 0, 0, time.UTC)
}

func TestSchedule_RejectsWithinWindow(t *testing.T) {
	guard, _ := newTestGuard()
	ctx := context.Background()
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	first, decision, err := guard.Schedule(ctx, ScheduleInput{ScheduledAt: slotTime(t, day, "8:30 AM")})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if !decision.Admitted || first == nil {
		t.Fatal("first booking of an empty day should be admitted")
	}

	// 8:45 AM is 15 minutes from 8:30 AM, inside the 30-minute window.
	second, decision, err := guard.Schedule(ctx, ScheduleInput{ScheduledAt: slotTime(t, day, "8:45 AM")})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if decision.Admitted || second != nil {
		t.Fatal("a slot 15 minutes from a booking must be rejected")
	}
	if decision.Conflict == nil || decision.Conflict.PublicID != first.PublicID {
		t.Error("the rejection should carry the conflicting appointment")
	}
	// 8:30 and 8:45 both collide with the booking; only 9:00 remains.
	if len(decision.AvailableAlternatives) != 1 || decision.AvailableAlternatives[0] != "9:00 AM" {
		t.Errorf("alternatives = %v, want [9:00 AM]", decision.AvailableAlternatives)
	}
}

func TestSchedule_ExactWindowSeparationAdmitted(t *testing.T) {
	guard, _ := newTestGuard()
	ctx := context.Background()
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	if _, decision, err := guard.Schedule(ctx, ScheduleInput{ScheduledAt: slotTime(t, day, "8:30 AM")}); err != nil || !decision.Admitted {
		t.Fatalf("first booking: decision=%+v err=%v", decision, err)
	}

	// Exactly 30 minutes apart; the window is strict.
	appt, decision, err := guard.Schedule(ctx, ScheduleInput{ScheduledAt: slotTime(t, day, "9:00 AM")})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if !decision.Admitted || appt == nil {
		t.Error("a slot exactly one collision window away must be admitted")
	}
}

func TestSchedule_CancelledSlotsDoNotCollide(t *testing.T) {
	guard, _ := newTestGuard()
	ctx := context.Background()
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	appt, _, err := guard.Schedule(ctx, ScheduleInput{ScheduledAt: slotTime(t, day, "8:30 AM")})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if err := guard.Cancel(ctx, appt); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	_, decision, err := guard.Schedule(ctx, ScheduleInput{ScheduledAt: slotTime(t, day, "8:45 AM")})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if !decision.Admitted {
		t.Error("a cancelled appointment must not block nearby slots")
	}
}

func TestSchedule_ExternalIDIsIdempotent(t *testing.T) {
	guard, repo := newTestGuard()
	ctx := context.Background()
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	externalID := "acuity-12345"

	first, decision, err := guard.Schedule(ctx, ScheduleInput{ExternalID: &externalID, ScheduledAt: slotTime(t, day, "8:30 AM")})
	if err != nil || !decision.Admitted {
		t.Fatalf("first Schedule: decision=%+v err=%v", decision, err)
	}

	// A retry of the same provider event must return the stored booking even
	// though the slot is now occupied.
	second, decision, err := guard.Schedule(ctx, ScheduleInput{ExternalID: &externalID, ScheduledAt: slotTime(t, day, "8:30 AM")})
	if err != nil {
		t.Fatalf("retry Schedule failed: %v", err)
	}
	if !decision.Admitted || second == nil {
		t.Fatal("a webhook retry must not be treated as a conflict")
	}
	if second.PublicID != first.PublicID {
		t.Errorf("retry returned %q, want the stored appointment %q", second.PublicID, first.PublicID)
	}
	if len(repo.appointments) != 1 {
		t.Errorf("retry persisted %d appointments, want 1", len(repo.appointments))
	}
}

func TestSchedule_RequiresTime(t *testing.T) {
	guard, _ := newTestGuard()
	if _, _, err := guard.Schedule(context.Background(), ScheduleInput{}); err == nil {
		t.Error("a zero time must be rejected")
	}
}

func TestReschedule_ExcludesSelf(t *testing.T) {
	guard, _ := newTestGuard()
	ctx := context.Background()
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	appt, _, err := guard.Schedule(ctx, ScheduleInput{ScheduledAt: slotTime(t, day, "8:30 AM")})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	// Moving an appointment by less than the window only collides with
	// itself, which the check excludes.
	decision, err := guard.Reschedule(ctx, appt, slotTime(t, day, "8:45 AM"))
	if err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}
	if !decision.Admitted {
		t.Error("a reschedule must not collide with the appointment being moved")
	}
	if !appt.ScheduledAt.Equal(slotTime(t, day, "8:45 AM")) {
		t.Errorf("scheduled_at = %v, want 8:45 AM", appt.ScheduledAt)
	}
}

func TestReschedule_StillCollidesWithOthers(t *testing.T) {
	guard, _ := newTestGuard()
	ctx := context.Background()
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	if _, _, err := guard.Schedule(ctx, ScheduleInput{ScheduledAt: slotTime(t, day, "8:30 AM")}); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	other, _, err := guard.Schedule(ctx, ScheduleInput{ScheduledAt: slotTime(t, day, "9:00 AM")})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	decision, err := guard.Reschedule(ctx, other, slotTime(t, day, "8:45 AM"))
	if err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}
	if decision.Admitted {
		t.Error("a reschedule into another booking's window must be rejected")
	}
}

func TestAvailability(t *testing.T) {
	guard, _ := newTestGuard()
	ctx := context.Background()
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	free, err := guard.Availability(ctx, day)
	if err != nil {
		t.Fatalf("Availability failed: %v", err)
	}
	if len(free) != 3 {
		t.Fatalf("empty day has %d free slots, want 3", len(free))
	}

	if _, _, err := guard.Schedule(ctx, ScheduleInput{ScheduledAt: slotTime(t, day, "8:45 AM")}); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	free, err = guard.Availability(ctx, day)
	if err != nil {
		t.Fatalf("Availability failed: %v", err)
	}
	// 8:45 AM occupies everything within 30 minutes: all three slots.
	if len(free) != 0 {
		t.Errorf("free slots after 8:45 AM booking = %v, want none", free)
	}
}
