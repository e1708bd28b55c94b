package services

import (
	"fmt"
	"testing"

	intdomain "armada/internal/domain"
	"armada/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func expectRouteRates(mock sqlmock.Sqlmock, routeID int64) {
	mock.ExpectQuery("FROM rate_settings WHERE route_id = ").
		WithArgs(routeID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "route_id", "weekday_minimum", "sunday_minimum", "driver_base_pay",
			"operator_share_percent", "driver_share_percent", "suspension_threshold",
		}).AddRow(2, routeID, "6000", "5000", "800", "60", "40", 3))
}

func entryReadbackRows(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "entry_date", "bus_id", "bus_code", "driver_id", "driver_name", "route_id",
		"gross_collection", "diesel_cost", "diesel_liters", "coop_contribution", "other_expenses",
		"manual_driver_share", "odometer_start", "odometer_end",
		"minimum_collection", "excess_collection", "driver_share", "operator_share", "net_residual",
		"below_minimum", "created_at",
	}).AddRow(
		id, "2025-11-17", 1, "BM-01", 2, "Andi", 3,
		"6300", "2277", "90.5", "1852", "0",
		nil, 1000, 1240,
		"6000", "300", "920", "1251", "0",
		false, "2025-11-17 20:01:02",
	)
}

func TestSettlementPreviewComputesWithoutPersisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRouteRates(mock, 3)

	svc := SettlementService{
		EntryRepo: repositories.DailyEntryRepository{DB: db},
		Rates:     RatesService{RateRepo: repositories.RateRepository{DB: db}},
	}

	res, err := svc.Preview(DailyEntryInput{
		EntryDate:               "2025-11-17",
		BusID:                   1,
		DriverID:                2,
		RouteID:                 3,
		GrossCollection:         "6300",
		DieselCost:              "2277",
		CooperativeContribution: "1852",
	})
	if err != nil {
		t.Fatalf("preview error: %v", err)
	}
	if !res.DriverShare.Equal(decimal.NewFromInt(920)) {
		t.Fatalf("driver share = %s, want 920", res.DriverShare)
	}
	if !res.OperatorShare.Equal(decimal.NewFromInt(1251)) {
		t.Fatalf("operator share = %s, want 1251", res.OperatorShare)
	}

	// No INSERT expected: preview never writes.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSettlementCreatePersistsComputedShares(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRouteRates(mock, 3)
	mock.ExpectExec("INSERT INTO daily_entries").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("FROM daily_entries e").
		WithArgs(int64(9)).
		WillReturnRows(entryReadbackRows(9))

	svc := SettlementService{
		EntryRepo: repositories.DailyEntryRepository{DB: db},
		Rates:     RatesService{RateRepo: repositories.RateRepository{DB: db}},
	}

	rec, err := svc.Create(DailyEntryInput{
		EntryDate:               "2025-11-17",
		BusID:                   1,
		DriverID:                2,
		RouteID:                 3,
		GrossCollection:         "6300",
		DieselCost:              "2277",
		DieselLiters:            "90.5",
		CooperativeContribution: "1852",
		OdometerStart:           1000,
		OdometerEnd:             1240,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if rec.ID != 9 {
		t.Fatalf("record id = %d, want 9", rec.ID)
	}
	if !rec.DriverShare.Equal(decimal.NewFromInt(920)) {
		t.Fatalf("persisted driver share = %s, want 920", rec.DriverShare)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSettlementCreateDuplicateDayIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRouteRates(mock, 3)
	mock.ExpectExec("INSERT INTO daily_entries").
		WillReturnError(fmt.Errorf("Error 1062: Duplicate entry '1-2025-11-17' for key 'uniq_bus_date'"))

	svc := SettlementService{
		EntryRepo: repositories.DailyEntryRepository{DB: db},
		Rates:     RatesService{RateRepo: repositories.RateRepository{DB: db}},
	}

	_, err = svc.Create(DailyEntryInput{
		EntryDate:       "2025-11-17",
		BusID:           1,
		DriverID:        2,
		RouteID:         3,
		GrossCollection: "6300",
	})
	if !intdomain.IsConflict(err) {
		t.Fatalf("duplicate (bus, date) must map to conflict, got %v", err)
	}
}

func TestSettlementCreateRejectsUnparsableAmount(t *testing.T) {
	svc := SettlementService{}
	_, err := svc.Create(DailyEntryInput{
		EntryDate:       "2025-11-17",
		BusID:           1,
		DriverID:        2,
		RouteID:         3,
		GrossCollection: "enam ribu",
	})
	if !intdomain.IsValidation(err) {
		t.Fatalf("unparsable amount must be a validation error, got %v", err)
	}
}

func TestSettlementCreateBelowMinimumRequiresManualShare(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRouteRates(mock, 3)

	svc := SettlementService{
		EntryRepo: repositories.DailyEntryRepository{DB: db},
		Rates:     RatesService{RateRepo: repositories.RateRepository{DB: db}},
	}

	_, err = svc.Create(DailyEntryInput{
		EntryDate:       "2025-11-17",
		BusID:           1,
		DriverID:        2,
		RouteID:         3,
		GrossCollection: "4000",
	})
	if !intdomain.IsValidation(err) {
		t.Fatalf("below-minimum entry without manual share must be a validation error, got %v", err)
	}
}

func TestSettlementSundayZeroesCoopContribution(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRouteRates(mock, 3)

	svc := SettlementService{
		EntryRepo: repositories.DailyEntryRepository{DB: db},
		Rates:     RatesService{RateRepo: repositories.RateRepository{DB: db}},
	}

	// 2025-11-23 is a Sunday; coop contribution in the payload is ignored.
	res, err := svc.Preview(DailyEntryInput{
		EntryDate:               "2025-11-23",
		BusID:                   1,
		DriverID:                2,
		RouteID:                 3,
		GrossCollection:         "5700",
		DieselCost:              "2640",
		CooperativeContribution: "1852",
	})
	if err != nil {
		t.Fatalf("preview error: %v", err)
	}
	if !res.OperatorShare.Equal(decimal.NewFromInt(1980)) {
		t.Fatalf("operator share = %s, want 1980 with zero sunday coop", res.OperatorShare)
	}
}
