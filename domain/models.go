package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateConfiguration adalah tarif efektif untuk satu trayek, sudah di-resolve
// oleh caller (per-route override jatuh ke setting global). Semua field wajib
// terisi sebelum perhitungan; lihat Validate.
type RateConfiguration struct {
	WeekdayMinimum       decimal.Decimal `json:"weekdayMinimum"`
	SundayMinimum        decimal.Decimal `json:"sundayMinimum"`
	DriverBasePay        decimal.Decimal `json:"driverBasePay"`
	OperatorSharePercent decimal.Decimal `json:"operatorSharePercent"`
	DriverSharePercent   decimal.Decimal `json:"driverSharePercent"`
	SuspensionThreshold  int             `json:"suspensionThreshold"`
}

// MinimumFor returns the required gross collection for the given calendar day.
// Sunday uses its own (lower) minimum; the weekday minimum covers Mon-Sat.
func (r RateConfiguration) MinimumFor(date time.Time) decimal.Decimal {
	if date.Weekday() == time.Sunday {
		return r.SundayMinimum
	}
	return r.WeekdayMinimum
}

// DailyEntry is one day's raw cash entry for a single bus/driver pairing.
// ManualDriverShare is a human-in-the-loop input: operators decide the driver
// payout themselves when collection misses the minimum. It must be set exactly
// when the below-minimum branch applies and is ignored otherwise.
type DailyEntry struct {
	Date                    time.Time        `json:"date"`
	GrossCollection         decimal.Decimal  `json:"grossCollection"`
	DieselCost              decimal.Decimal  `json:"dieselCost"`
	CooperativeContribution decimal.Decimal  `json:"cooperativeContribution"`
	OtherExpenses           decimal.Decimal  `json:"otherExpenses"`
	ManualDriverShare       *decimal.Decimal `json:"manualDriverShare,omitempty"`
}

// SettlementResult is the computed split for one DailyEntry.
// OperatorShare may be negative: an under-collection is absorbed by the
// operator, it is a valid business outcome, not an error.
// NetResidual is informational; it is zero whenever the configured split
// percentages sum to 100 and the above-minimum branch applies.
type SettlementResult struct {
	MinimumCollection decimal.Decimal `json:"minimumCollection"`
	ExcessCollection  decimal.Decimal `json:"excessCollection"`
	DriverShare       decimal.Decimal `json:"driverShare"`
	OperatorShare     decimal.Decimal `json:"operatorShare"`
	NetResidual       decimal.Decimal `json:"netResidual"`
	BelowMinimum      bool            `json:"belowMinimum"`
}

// DayRecord is a persisted daily entry reduced to the fields the anomaly
// analysis reads. Records are grouped per calendar date, never mutated.
type DayRecord struct {
	Date            time.Time       `json:"date"`
	BusCode         string          `json:"busCode"`
	DriverID        int64           `json:"driverId"`
	DriverName      string          `json:"driverName"`
	GrossCollection decimal.Decimal `json:"grossCollection"`
	DieselCost      decimal.Decimal `json:"dieselCost"`
	DieselLiters    decimal.Decimal `json:"dieselLiters"`
	OdometerStart   int64           `json:"odometerStart"`
	OdometerEnd     int64           `json:"odometerEnd"`
}

// RecordAnalysis is one DayRecord with its per-day derived signals.
// KmPerLiter is nil when odometer/liter data is absent or inconsistent;
// absence of data is not the same thing as zero efficiency.
type RecordAnalysis struct {
	Date             time.Time        `json:"date"`
	BusCode          string           `json:"busCode"`
	DriverID         int64            `json:"driverId"`
	DriverName       string           `json:"driverName"`
	GrossCollection  decimal.Decimal  `json:"grossCollection"`
	DieselCost       decimal.Decimal  `json:"dieselCost"`
	DieselRatio      decimal.Decimal  `json:"dieselRatio"`
	DeviationPercent decimal.Decimal  `json:"deviationPercent"`
	KmPerLiter       *decimal.Decimal `json:"kmPerLiter"`
	BelowMinimum     bool             `json:"belowMinimum"`
	Suspicious       bool             `json:"suspicious"`
}

// DayAnalysis holds fleet-wide statistics for one calendar date.
// SlowDay means the whole fleet averaged below the minimum; on such a day no
// individual record is flagged suspicious.
type DayAnalysis struct {
	Date                time.Time        `json:"date"`
	IsSunday            bool             `json:"isSunday"`
	MinimumCollection   decimal.Decimal  `json:"minimumCollection"`
	FleetAvgCollection  decimal.Decimal  `json:"fleetAvgCollection"`
	FleetAvgDieselCost  decimal.Decimal  `json:"fleetAvgDieselCost"`
	FleetAvgDieselRatio decimal.Decimal  `json:"fleetAvgDieselRatio"`
	SlowDay             bool             `json:"slowDay"`
	Records             []RecordAnalysis `json:"records"`
}

// DriverSummary is the per-driver rollup across the analyzed window.
type DriverSummary struct {
	DriverID               int64            `json:"driverId"`
	DriverName             string           `json:"driverName"`
	TotalDays              int              `json:"totalDays"`
	BelowMinimumCount      int              `json:"belowMinimumCount"`
	SuspiciousDaysCount    int              `json:"suspiciousDaysCount"`
	AvgDeviation           decimal.Decimal  `json:"avgDeviation"`
	AvgDieselRatio         decimal.Decimal  `json:"avgDieselRatio"`
	QualifiesForSuspension bool             `json:"qualifiesForSuspension"`
	WorstDays              []RecordAnalysis `json:"worstDays"`
}

// ReportSummary is the top-level rollup echoed to the UI.
type ReportSummary struct {
	TotalRecords        int `json:"totalRecords"`
	TotalBelowMinimum   int `json:"totalBelowMinimum"`
	TotalSuspicious     int `json:"totalSuspicious"`
	DriversAtRisk       int `json:"driversAtRisk"`
	SuspensionThreshold int `json:"suspensionThreshold"`
}

// AnomalyReport is the full analysis output for one reporting request.
type AnomalyReport struct {
	DailyAnalysis []DayAnalysis   `json:"dailyAnalysis"`
	DriverSummary []DriverSummary `json:"driverSummary"`
	Summary       ReportSummary   `json:"summary"`
}
