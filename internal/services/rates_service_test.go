package services

import (
	"testing"

	intdomain "armada/internal/domain"
	"armada/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func globalRateRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "route_id", "weekday_minimum", "sunday_minimum", "driver_base_pay",
		"operator_share_percent", "driver_share_percent", "suspension_threshold",
	}).AddRow(1, 0, "6000", "5000", "800", "60", "40", 3)
}

func TestRatesResolveFallsBackToGlobal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// No override row for route 5, so the global row applies.
	mock.ExpectQuery("FROM rate_settings WHERE route_id = ").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM rate_settings WHERE route_id IS NULL").
		WillReturnRows(globalRateRows())

	svc := RatesService{RateRepo: repositories.RateRepository{DB: db}}
	cfg, err := svc.Resolve(5)
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if !cfg.WeekdayMinimum.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("weekday minimum = %s, want global 6000", cfg.WeekdayMinimum)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRatesResolvePrefersRouteOverride(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	override := sqlmock.NewRows([]string{
		"id", "route_id", "weekday_minimum", "sunday_minimum", "driver_base_pay",
		"operator_share_percent", "driver_share_percent", "suspension_threshold",
	}).AddRow(2, 5, "7000", "5500", "900", "55", "45", 4)

	mock.ExpectQuery("FROM rate_settings WHERE route_id = ").
		WithArgs(int64(5)).
		WillReturnRows(override)

	svc := RatesService{RateRepo: repositories.RateRepository{DB: db}}
	cfg, err := svc.Resolve(5)
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if !cfg.WeekdayMinimum.Equal(decimal.NewFromInt(7000)) {
		t.Fatalf("weekday minimum = %s, want override 7000", cfg.WeekdayMinimum)
	}
	if cfg.SuspensionThreshold != 4 {
		t.Fatalf("threshold = %d, want override 4", cfg.SuspensionThreshold)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRatesResolveMissingGlobalIsOperationalError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM rate_settings WHERE route_id IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := RatesService{RateRepo: repositories.RateRepository{DB: db}}
	_, err = svc.Resolve(0)
	if err == nil {
		t.Fatalf("expected error for missing global settings")
	}
	if !intdomain.IsInternal(err) {
		t.Fatalf("missing configuration must be an internal error, got %v", err)
	}
}

func TestRatesResolveRejectsIncompleteRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	broken := sqlmock.NewRows([]string{
		"id", "route_id", "weekday_minimum", "sunday_minimum", "driver_base_pay",
		"operator_share_percent", "driver_share_percent", "suspension_threshold",
	}).AddRow(1, 0, "6000", "0", "800", "60", "40", 3)

	mock.ExpectQuery("FROM rate_settings WHERE route_id IS NULL").
		WillReturnRows(broken)

	svc := RatesService{RateRepo: repositories.RateRepository{DB: db}}
	_, err = svc.Resolve(0)
	if !intdomain.IsInternal(err) {
		t.Fatalf("incomplete stored tarif must be an internal error, got %v", err)
	}
}

func TestValidateSettingRanges(t *testing.T) {
	good := repositories.RateSetting{
		WeekdayMinimum:       decimal.NewFromInt(6000),
		SundayMinimum:        decimal.NewFromInt(5000),
		DriverBasePay:        decimal.NewFromInt(800),
		OperatorSharePercent: decimal.NewFromInt(70),
		DriverSharePercent:   decimal.NewFromInt(45),
		SuspensionThreshold:  3,
	}
	// Asymmetric split (70+45) is intentionally legal.
	if err := ValidateSetting(good); err != nil {
		t.Fatalf("asymmetric split should validate, got %v", err)
	}

	bad := good
	bad.OperatorSharePercent = decimal.NewFromInt(120)
	if err := ValidateSetting(bad); !intdomain.IsValidation(err) {
		t.Fatalf("percent over 100 must fail validation, got %v", err)
	}

	bad = good
	bad.WeekdayMinimum = decimal.Zero
	if err := ValidateSetting(bad); !intdomain.IsValidation(err) {
		t.Fatalf("zero minimum must fail validation, got %v", err)
	}
}
