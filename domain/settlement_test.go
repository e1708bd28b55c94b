package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testRates() RateConfiguration {
	return RateConfiguration{
		WeekdayMinimum:       decimal.NewFromInt(6000),
		SundayMinimum:        decimal.NewFromInt(5000),
		DriverBasePay:        decimal.NewFromInt(800),
		OperatorSharePercent: decimal.NewFromInt(60),
		DriverSharePercent:   decimal.NewFromInt(40),
		SuspensionThreshold:  3,
	}
}

func weekday(t *testing.T) time.Time {
	t.Helper()
	// 2025-11-17 is a Monday
	d := time.Date(2025, 11, 17, 0, 0, 0, 0, time.Local)
	if d.Weekday() == time.Sunday {
		t.Fatalf("fixture date should not be a Sunday")
	}
	return d
}

func sunday(t *testing.T) time.Time {
	t.Helper()
	d := time.Date(2025, 11, 23, 0, 0, 0, 0, time.Local)
	if d.Weekday() != time.Sunday {
		t.Fatalf("fixture date should be a Sunday, got %s", d.Weekday())
	}
	return d
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSettleAboveMinimumWeekday(t *testing.T) {
	res, err := Settle(DailyEntry{
		Date:                    weekday(t),
		GrossCollection:         dec(6300),
		DieselCost:              dec(2277),
		CooperativeContribution: dec(1852),
	}, testRates())
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}

	if !res.ExcessCollection.Equal(dec(300)) {
		t.Fatalf("excess = %s, want 300", res.ExcessCollection)
	}
	if !res.DriverShare.Equal(dec(920)) {
		t.Fatalf("driver share = %s, want 920", res.DriverShare)
	}
	if !res.OperatorShare.Equal(dec(1251)) {
		t.Fatalf("operator share = %s, want 1251", res.OperatorShare)
	}
	if !res.NetResidual.IsZero() {
		t.Fatalf("net residual = %s, want 0", res.NetResidual)
	}
	if res.BelowMinimum {
		t.Fatalf("should not be flagged below minimum")
	}
}

func TestSettleBelowMinimumUsesManualShare(t *testing.T) {
	manual := dec(600)
	res, err := Settle(DailyEntry{
		Date:                    weekday(t),
		GrossCollection:         dec(5000),
		DieselCost:              dec(2203),
		CooperativeContribution: dec(1852),
		ManualDriverShare:       &manual,
	}, testRates())
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}

	if !res.BelowMinimum {
		t.Fatalf("expected below-minimum branch")
	}
	if !res.ExcessCollection.IsZero() {
		t.Fatalf("excess = %s, want 0", res.ExcessCollection)
	}
	if !res.DriverShare.Equal(dec(600)) {
		t.Fatalf("driver share = %s, want manual 600", res.DriverShare)
	}
	if !res.OperatorShare.Equal(dec(345)) {
		t.Fatalf("operator share = %s, want 345", res.OperatorShare)
	}
}

func TestSettleNegativeOperatorShareIsValid(t *testing.T) {
	manual := dec(0)
	res, err := Settle(DailyEntry{
		Date:                    weekday(t),
		GrossCollection:         dec(3400),
		DieselCost:              dec(2240),
		CooperativeContribution: dec(1852),
		ManualDriverShare:       &manual,
	}, testRates())
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if !res.OperatorShare.Equal(dec(-692)) {
		t.Fatalf("operator share = %s, want -692 (operator absorbs the shortfall)", res.OperatorShare)
	}
}

func TestSettleSundayMinimumNoCoop(t *testing.T) {
	res, err := Settle(DailyEntry{
		Date:            sunday(t),
		GrossCollection: dec(5700),
		DieselCost:      dec(2640),
	}, testRates())
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if !res.MinimumCollection.Equal(dec(5000)) {
		t.Fatalf("sunday minimum = %s, want 5000", res.MinimumCollection)
	}
	if !res.ExcessCollection.Equal(dec(700)) {
		t.Fatalf("excess = %s, want 700", res.ExcessCollection)
	}
	if !res.DriverShare.Equal(dec(1080)) {
		t.Fatalf("driver share = %s, want 1080", res.DriverShare)
	}
	if !res.OperatorShare.Equal(dec(1980)) {
		t.Fatalf("operator share = %s, want 1980", res.OperatorShare)
	}
}

func TestSettleZeroCollectionRoutesBelowMinimum(t *testing.T) {
	manual := dec(0)
	res, err := Settle(DailyEntry{
		Date:              weekday(t),
		GrossCollection:   dec(0),
		DieselCost:        dec(500),
		ManualDriverShare: &manual,
	}, testRates())
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if !res.BelowMinimum {
		t.Fatalf("zero collection must route through the below-minimum branch")
	}
	if !res.OperatorShare.Equal(dec(-500)) {
		t.Fatalf("operator share = %s, want -500", res.OperatorShare)
	}
}

func TestSettleExactlyAtMinimumTakesStandardBranch(t *testing.T) {
	res, err := Settle(DailyEntry{
		Date:            weekday(t),
		GrossCollection: dec(6000),
	}, testRates())
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if res.BelowMinimum {
		t.Fatalf("gross == minimum must take the at-or-above branch")
	}
	if !res.ExcessCollection.IsZero() {
		t.Fatalf("excess = %s, want 0", res.ExcessCollection)
	}
	if !res.DriverShare.Equal(dec(800)) {
		t.Fatalf("driver share = %s, want base pay 800", res.DriverShare)
	}
}

func TestSettleMissingManualShareRejected(t *testing.T) {
	_, err := Settle(DailyEntry{
		Date:            weekday(t),
		GrossCollection: dec(4000),
	}, testRates())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSettleRejectsNegativeAmounts(t *testing.T) {
	cases := []DailyEntry{
		{Date: weekday(t), GrossCollection: dec(-1)},
		{Date: weekday(t), GrossCollection: dec(7000), DieselCost: dec(-1)},
		{Date: weekday(t), GrossCollection: dec(7000), OtherExpenses: dec(-1)},
	}
	for i, entry := range cases {
		if _, err := Settle(entry, testRates()); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestSettleMissingDateRejected(t *testing.T) {
	_, err := Settle(DailyEntry{GrossCollection: dec(7000)}, testRates())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSettleIncompleteRatesRejected(t *testing.T) {
	rates := testRates()
	rates.DriverBasePay = decimal.Zero
	_, err := Settle(DailyEntry{Date: weekday(t), GrossCollection: dec(7000)}, rates)
	if !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("expected ErrConfigurationMissing, got %v", err)
	}
}

func TestSettleExcessNeverNegative(t *testing.T) {
	manual := dec(100)
	grosses := []int64{0, 1, 2500, 5999, 6000, 6001, 9000, 25000}
	for _, g := range grosses {
		entry := DailyEntry{
			Date:              weekday(t),
			GrossCollection:   dec(g),
			ManualDriverShare: &manual,
		}
		res, err := Settle(entry, testRates())
		if err != nil {
			t.Fatalf("gross=%d: settle error: %v", g, err)
		}
		if res.ExcessCollection.IsNegative() {
			t.Fatalf("gross=%d: excess went negative: %s", g, res.ExcessCollection)
		}
	}
}

// Residual stays zero for a balanced split whenever otherExpenses is zero;
// an asymmetric split leaves a nonzero residual by construction.
func TestSettleResidualIdentity(t *testing.T) {
	res, err := Settle(DailyEntry{
		Date:                    weekday(t),
		GrossCollection:         dec(8450),
		DieselCost:              dec(2100),
		CooperativeContribution: dec(1852),
	}, testRates())
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if !res.NetResidual.IsZero() {
		t.Fatalf("balanced split residual = %s, want 0", res.NetResidual)
	}

	asym := testRates()
	asym.OperatorSharePercent = dec(50)
	res, err = Settle(DailyEntry{
		Date:            weekday(t),
		GrossCollection: dec(8000),
	}, asym)
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if res.NetResidual.IsZero() {
		t.Fatalf("asymmetric split should leave a nonzero residual")
	}
}

func TestMinimumDependsOnlyOnSunday(t *testing.T) {
	rates := testRates()
	mondays := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		time.Date(2025, 11, 17, 0, 0, 0, 0, time.Local),
		time.Date(2026, 6, 15, 0, 0, 0, 0, time.Local),
	}
	for _, d := range mondays {
		if !rates.MinimumFor(d).Equal(rates.WeekdayMinimum) {
			t.Fatalf("%s: weekday minimum mismatch", d.Format("2006-01-02"))
		}
	}
	sundays := []time.Time{
		time.Date(2024, 1, 7, 0, 0, 0, 0, time.Local),
		time.Date(2025, 11, 23, 0, 0, 0, 0, time.Local),
	}
	for _, d := range sundays {
		if !rates.MinimumFor(d).Equal(rates.SundayMinimum) {
			t.Fatalf("%s: sunday minimum mismatch", d.Format("2006-01-02"))
		}
	}
}
