package services

import (
	"testing"

	"armada/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func snapshotColumns() []string {
	return []string{
		"entry_date", "bus_code", "driver_id", "driver_name",
		"gross_collection", "diesel_cost", "diesel_liters",
		"odometer_start", "odometer_end",
	}
}

func TestAnomalyReportOverWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM rate_settings WHERE route_id IS NULL").
		WillReturnRows(globalRateRows())

	// One weekday with three buses: two healthy, one well below the fleet
	// average with disproportionate diesel. Budi also runs a below-minimum
	// day later in the window.
	rows := sqlmock.NewRows(snapshotColumns()).
		AddRow("2025-11-17", "BM-01", 1, "Andi", "9000", "1800", "20", 1000, 1240).
		AddRow("2025-11-17", "BM-02", 2, "Budi", "4000", "1600", "18", 2000, 2120).
		AddRow("2025-11-17", "BM-03", 3, "Citra", "9000", "1800", "20", 3000, 3240).
		AddRow("2025-11-18", "BM-02", 2, "Budi", "3000", "1500", "17", 2120, 2210)
	mock.ExpectQuery("FROM daily_entries e").
		WithArgs("2025-11-01", "2025-11-30").
		WillReturnRows(rows)

	svc := AnomalyService{
		EntryRepo: repositories.DailyEntryRepository{DB: db},
		Rates:     RatesService{RateRepo: repositories.RateRepository{DB: db}},
	}

	report, err := svc.Report("2025-11-01", "2025-11-30")
	if err != nil {
		t.Fatalf("report error: %v", err)
	}

	if report.Summary.TotalRecords != 4 {
		t.Fatalf("total records = %d, want 4", report.Summary.TotalRecords)
	}
	if len(report.DailyAnalysis) != 2 {
		t.Fatalf("daily analysis days = %d, want 2", len(report.DailyAnalysis))
	}

	// 2025-11-17: fleet average 22000/3; Budi is >20% under it while burning
	// diesel at 1600/4000 = 0.4 against a fleet ratio ceiling below that.
	day := report.DailyAnalysis[0]
	var flagged int
	for _, rec := range day.Records {
		if rec.Suspicious {
			flagged++
			if rec.DriverName != "Budi" {
				t.Fatalf("suspicious driver = %s, want Budi", rec.DriverName)
			}
		}
	}
	if flagged != 1 {
		t.Fatalf("suspicious count on first day = %d, want 1", flagged)
	}

	// 2025-11-18 has a single bus out: a fleet of one is never suspicious of
	// itself, but 3000 < 6000 still counts toward Budi's below-minimum tally.
	if len(report.DriverSummary) == 0 {
		t.Fatal("driver summary is empty")
	}
	top := report.DriverSummary[0]
	if top.DriverName != "Budi" {
		t.Fatalf("top summary driver = %s, want Budi", top.DriverName)
	}
	if top.BelowMinimumCount != 2 {
		t.Fatalf("budi below-minimum count = %d, want 2", top.BelowMinimumCount)
	}
	if top.QualifiesForSuspension {
		t.Fatal("two below-minimum days must not qualify for suspension at threshold 3")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAnomalyReportEmptyWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM rate_settings WHERE route_id IS NULL").
		WillReturnRows(globalRateRows())
	mock.ExpectQuery("FROM daily_entries e").
		WillReturnRows(sqlmock.NewRows(snapshotColumns()))

	svc := AnomalyService{
		EntryRepo: repositories.DailyEntryRepository{DB: db},
		Rates:     RatesService{RateRepo: repositories.RateRepository{DB: db}},
	}

	report, err := svc.Report("", "")
	if err != nil {
		t.Fatalf("report error: %v", err)
	}
	if report.Summary.TotalRecords != 0 || len(report.DailyAnalysis) != 0 || len(report.DriverSummary) != 0 {
		t.Fatalf("empty window must produce an empty report, got %+v", report.Summary)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
