package holiday

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"seat-booking/database"
	"seat-booking/logger"
	"seat-booking/types"
	bookingTypes "seat-booking/types/booking"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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

	hc := NewHolidayController(db, logger.NewAsyncLogger(db))

	app := fiber.New()
	app.Post("/holidays", hc.Store)
	app.Get("/holidays", hc.Index)
	app.Delete("/holidays/:id", hc.Destroy)

	return app, db
}

func postHoliday(t *testing.T, app *fiber.App, date, reason string) types.ApiResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"date": date, "reason": reason})
	req := httptest.NewRequest(http.MethodPost, "/holidays", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create holiday status = %d, want 201", resp.StatusCode)
	}

	var out types.ApiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func listHolidays(t *testing.T, app *fiber.App) []map[string]interface{} {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/holidays", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out.Data
}

func TestHolidayRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	future := time.Now().UTC().AddDate(0, 0, 14).Format(bookingTypes.DateLayout)
	created := postHoliday(t, app, future, "Poya day")

	holidays := listHolidays(t, app)
	if len(holidays) != 1 {
		t.Fatalf("got %d upcoming holidays, want 1", len(holidays))
	}
	if holidays[0]["reason"] != "Poya day" {
		t.Errorf("reason = %v, want Poya day", holidays[0]["reason"])
	}

	// Pull the id out of the create response and delete it.
	data, ok := created.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected create payload: %#v", created.Data)
	}
	id := uint(data["id"].(float64))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/holidays/%d", id), nil))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}

	if remaining := listHolidays(t, app); len(remaining) != 0 {
		t.Fatalf("holiday still listed after delete: %v", remaining)
	}
}

func TestUpcomingExcludesPast(t *testing.T) {
	app, _ := newTestApp(t)

	past := time.Now().UTC().AddDate(0, 0, -7).Format(bookingTypes.DateLayout)
	future := time.Now().UTC().AddDate(0, 0, 7).Format(bookingTypes.DateLayout)
	postHoliday(t, app, past, "long gone")
	postHoliday(t, app, future, "coming up")

	holidays := listHolidays(t, app)
	if len(holidays) != 1 {
		t.Fatalf("got %d upcoming holidays, want 1", len(holidays))
	}
	if holidays[0]["reason"] != "coming up" {
		t.Errorf("wrong holiday survived the filter: %v", holidays[0])
	}
}

func TestUpcomingExcludesTodayOnceStarted(t *testing.T) {
	app, _ := newTestApp(t)

	// Stored at midnight, today's date is strictly before the current moment.
	today := time.Now().UTC().Format(bookingTypes.DateLayout)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(bookingTypes.DateLayout)
	postHoliday(t, app, today, "today's holiday")
	postHoliday(t, app, tomorrow, "tomorrow's holiday")

	holidays := listHolidays(t, app)
	if len(holidays) != 1 {
		t.Fatalf("got %d upcoming holidays, want 1: %v", len(holidays), holidays)
	}
	if holidays[0]["reason"] != "tomorrow's holiday" {
		t.Errorf("wrong holiday survived the filter: %v", holidays[0])
	}
}

func TestDeleteMissingHoliday(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/holidays/999", nil))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCreateHolidayValidation(t *testing.T) {
	app, _ := newTestApp(t)

	body, _ := json.Marshal(map[string]string{"date": "bad-date", "reason": "x"})
	req := httptest.NewRequest(http.MethodPost, "/holidays", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
