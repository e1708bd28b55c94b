package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func rateRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "route_id", "weekday_minimum", "sunday_minimum", "driver_base_pay",
		"operator_share_percent", "driver_share_percent", "suspension_threshold",
	})
}

func TestRateRepositoryGetGlobal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM rate_settings WHERE route_id IS NULL").
		WillReturnRows(rateRows().AddRow(1, 0, "6000", "5000", "800", "60", "40", 3))

	repo := RateRepository{DB: db}
	s, err := repo.GetGlobal()
	if err != nil {
		t.Fatalf("get global error: %v", err)
	}
	if !s.WeekdayMinimum.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("weekday minimum = %s, want 6000", s.WeekdayMinimum)
	}
	if !s.DriverSharePercent.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("driver share percent = %s, want 40", s.DriverSharePercent)
	}
	if s.SuspensionThreshold != 3 {
		t.Fatalf("suspension threshold = %d, want 3", s.SuspensionThreshold)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRateRepositoryUpsertInsertsWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM rate_settings WHERE route_id = ").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO rate_settings").
		WillReturnResult(sqlmock.NewResult(12, 1))

	repo := RateRepository{DB: db}
	s, err := repo.Upsert(RateSetting{
		RouteID:              7,
		WeekdayMinimum:       decimal.NewFromInt(6500),
		SundayMinimum:        decimal.NewFromInt(5200),
		DriverBasePay:        decimal.NewFromInt(800),
		OperatorSharePercent: decimal.NewFromInt(60),
		DriverSharePercent:   decimal.NewFromInt(40),
		SuspensionThreshold:  3,
	})
	if err != nil {
		t.Fatalf("upsert error: %v", err)
	}
	if s.ID != 12 {
		t.Fatalf("upsert id = %d, want 12", s.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRateRepositoryUpsertUpdatesExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM rate_settings WHERE route_id IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec("UPDATE rate_settings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := RateRepository{DB: db}
	s, err := repo.Upsert(RateSetting{
		WeekdayMinimum:       decimal.NewFromInt(6000),
		SundayMinimum:        decimal.NewFromInt(5000),
		DriverBasePay:        decimal.NewFromInt(800),
		OperatorSharePercent: decimal.NewFromInt(60),
		DriverSharePercent:   decimal.NewFromInt(40),
		SuspensionThreshold:  3,
	})
	if err != nil {
		t.Fatalf("upsert error: %v", err)
	}
	if s.ID != 3 {
		t.Fatalf("upsert id = %d, want existing 3", s.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
