package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestDailyEntryListSnapshotsWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"entry_date", "bus_code", "driver_id", "driver_name",
		"gross_collection", "diesel_cost", "diesel_liters", "odometer_start", "odometer_end",
	}).
		AddRow("2025-11-17", "BM-01", 1, "Andi", "6300", "2277", "90.5", 1000, 1240).
		AddRow("2025-11-18", "BM-02", 2, "Budi", "5000", "2203", "0", 0, 0)

	mock.ExpectQuery("FROM daily_entries e").
		WithArgs("2025-11-01", "2025-11-30").
		WillReturnRows(rows)

	repo := DailyEntryRepository{DB: db}
	recs, err := repo.ListSnapshots("2025-11-01", "2025-11-30")
	if err != nil {
		t.Fatalf("list snapshots error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Date.Format("2006-01-02") != "2025-11-17" {
		t.Fatalf("first date = %s", recs[0].Date.Format("2006-01-02"))
	}
	if !recs[0].GrossCollection.Equal(decimal.NewFromInt(6300)) {
		t.Fatalf("gross = %s, want 6300", recs[0].GrossCollection)
	}
	if !recs[0].DieselLiters.Equal(decimal.NewFromFloat(90.5)) {
		t.Fatalf("liters = %s, want 90.5", recs[0].DieselLiters)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDailyEntryListSnapshotsOpenWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM daily_entries e").
		WillReturnRows(sqlmock.NewRows([]string{
			"entry_date", "bus_code", "driver_id", "driver_name",
			"gross_collection", "diesel_cost", "diesel_liters", "odometer_start", "odometer_end",
		}))

	repo := DailyEntryRepository{DB: db}
	recs, err := repo.ListSnapshots("", "")
	if err != nil {
		t.Fatalf("open window error: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty snapshot list, got %d", len(recs))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDailyEntryInsertPersistsManualShare(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO daily_entries").
		WillReturnResult(sqlmock.NewResult(42, 1))

	manual := decimal.NewFromInt(600)
	repo := DailyEntryRepository{DB: db}
	id, err := repo.Insert(DailyEntryRecord{
		EntryDate:         time.Now().Format("2006-01-02"),
		BusID:             1,
		DriverID:          2,
		RouteID:           3,
		GrossCollection:   decimal.NewFromInt(5000),
		DieselCost:        decimal.NewFromInt(2203),
		ManualDriverShare: &manual,
		DriverShare:       manual,
		OperatorShare:     decimal.NewFromInt(345),
		BelowMinimum:      true,
	})
	if err != nil {
		t.Fatalf("insert error: %v", err)
	}
	if id != 42 {
		t.Fatalf("insert id = %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
