package booking

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"seat-booking/database"
	bookingModel "seat-booking/models/booking"
	internModel "seat-booking/models/intern"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedIntern(t *testing.T, db *gorm.DB, internID, email string) *internModel.Intern {
	t.Helper()
	in := &internModel.Intern{
		InternID:  internID,
		FirstName: "Test",
		LastName:  "Intern",
		Email:     email,
		Role:      internModel.RoleIntern,
	}
	if err := db.Create(in).Error; err != nil {
		t.Fatalf("seed intern: %v", err)
	}
	return in
}

func futureDate(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days)
}

func TestCreateRejectsDuplicateSeat(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	a := seedIntern(t, db, "INT-001", "a@example.com")
	b := seedIntern(t, db, "INT-002", "b@example.com")

	date := futureDate(7)

	if _, err := svc.Create(a.ID, date, "12A", ""); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := svc.Create(b.ID, date, "12A", "")
	if !errors.Is(err, ErrSeatTaken) {
		t.Fatalf("expected ErrSeatTaken, got %v", err)
	}

	// A different seat on the same date is fine.
	if _, err := svc.Create(b.ID, date, "12B", ""); err != nil {
		t.Fatalf("different seat same date: %v", err)
	}

	// The same seat on a different date is fine too.
	if _, err := svc.Create(b.ID, futureDate(8), "12A", ""); err != nil {
		t.Fatalf("same seat different date: %v", err)
	}
}

func TestCreateRejectsPastDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	in := seedIntern(t, db, "INT-001", "a@example.com")

	_, err := svc.Create(in.ID, time.Now().UTC().AddDate(0, 0, -1), "12A", "")
	if !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}

	// Today is not in the past.
	if _, err := svc.Create(in.ID, time.Now().UTC(), "12A", ""); err != nil {
		t.Fatalf("booking for today: %v", err)
	}
}

func TestCreateDefaultsAndOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	in := seedIntern(t, db, "INT-001", "a@example.com")

	created, err := svc.Create(in.ID, futureDate(3), "7C", "window seat")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.IsConfirmed {
		t.Error("new booking must start unconfirmed")
	}
	if created.AttendanceStatus != bookingModel.AttendanceUnset {
		t.Errorf("new booking attendance = %q, want unset", created.AttendanceStatus)
	}
	if created.Intern.Email != in.Email {
		t.Errorf("owner not attached: got %q", created.Intern.Email)
	}
	if created.SpecialRequest != "window seat" {
		t.Errorf("special request = %q", created.SpecialRequest)
	}
}

func TestConfirmIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	in := seedIntern(t, db, "INT-001", "a@example.com")

	created, err := svc.Create(in.ID, futureDate(2), "1A", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.Confirm(created.ID)
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	if !first.IsConfirmed {
		t.Error("first confirm did not set the flag")
	}

	second, err := svc.Confirm(created.ID)
	if err != nil {
		t.Fatalf("second confirm must not fail: %v", err)
	}
	if !second.IsConfirmed {
		t.Error("second confirm cleared the flag")
	}
}

func TestConfirmMissingBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	if _, err := svc.Confirm(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelTwice(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	in := seedIntern(t, db, "INT-001", "a@example.com")

	created, err := svc.Create(in.ID, futureDate(2), "1A", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Cancel(created.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if _, err := svc.Cancel(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second cancel: expected ErrNotFound, got %v", err)
	}
}

func TestCancelFreesSeat(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	in := seedIntern(t, db, "INT-001", "a@example.com")

	date := futureDate(5)
	created, err := svc.Create(in.ID, date, "3D", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Cancel(created.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Create(in.ID, date, "3D", ""); err != nil {
		t.Fatalf("rebooking a canceled seat: %v", err)
	}
}

func TestListAllOrdersUnconfirmedFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	in := seedIntern(t, db, "INT-001", "a@example.com")

	b1, err := svc.Create(in.ID, futureDate(1), "1A", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(in.ID, futureDate(1), "1B", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Confirm(b1.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	all, err := svc.ListAll(nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d bookings, want 2", len(all))
	}
	if all[0].IsConfirmed {
		t.Error("unconfirmed booking must come before confirmed")
	}
	if !all[1].IsConfirmed {
		t.Error("confirmed booking must come last")
	}
}

func TestListAllDateFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	in := seedIntern(t, db, "INT-001", "a@example.com")

	target := futureDate(4)
	if _, err := svc.Create(in.ID, target, "2A", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(in.ID, futureDate(5), "2A", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	filtered, err := svc.ListAll(&target)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("got %d bookings for exact date, want 1", len(filtered))
	}
}

func TestListForInternScopesToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	a := seedIntern(t, db, "INT-001", "a@example.com")
	b := seedIntern(t, db, "INT-002", "b@example.com")

	if _, err := svc.Create(a.ID, futureDate(1), "1A", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(b.ID, futureDate(1), "1B", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := svc.ListForIntern(a.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("got %d bookings, want 1", len(mine))
	}
	if mine[0].InternID != a.ID {
		t.Errorf("booking owned by %d, want %d", mine[0].InternID, a.ID)
	}
}

func TestSetAttendance(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	in := seedIntern(t, db, "INT-001", "a@example.com")

	created, err := svc.Create(in.ID, futureDate(1), "1A", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.SetAttendance(created.ID, bookingModel.AttendancePresent)
	if err != nil {
		t.Fatalf("set attendance: %v", err)
	}
	if updated.AttendanceStatus != bookingModel.AttendancePresent {
		t.Errorf("attendance = %q, want present", updated.AttendanceStatus)
	}

	// Overwrite is allowed.
	updated, err = svc.SetAttendance(created.ID, bookingModel.AttendanceExcused)
	if err != nil {
		t.Fatalf("overwrite attendance: %v", err)
	}
	if updated.AttendanceStatus != bookingModel.AttendanceExcused {
		t.Errorf("attendance = %q, want excused", updated.AttendanceStatus)
	}

	if _, err := svc.SetAttendance(999, bookingModel.AttendancePresent); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAttendanceForInternWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	in := seedIntern(t, db, "INT-001", "a@example.com")

	for i := 1; i <= 5; i++ {
		if _, err := svc.Create(in.ID, futureDate(i), "9A", ""); err != nil {
			t.Fatalf("create day %d: %v", i, err)
		}
	}

	start := futureDate(2)
	end := futureDate(4)
	windowed, err := svc.AttendanceForIntern(in.ID, &start, &end)
	if err != nil {
		t.Fatalf("attendance window: %v", err)
	}
	if len(windowed) != 3 {
		t.Fatalf("got %d bookings in [start,end], want 3 (window is inclusive)", len(windowed))
	}

	all, err := svc.AttendanceForIntern(in.ID, nil, nil)
	if err != nil {
		t.Fatalf("attendance without window: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("got %d bookings without window, want 5", len(all))
	}
}
