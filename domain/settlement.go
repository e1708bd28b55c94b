package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error kinds for caller misuse. Both are wrapped with field context; use
// errors.Is to classify.
var (
	ErrInvalidInput         = errors.New("input tidak valid")
	ErrConfigurationMissing = errors.New("konfigurasi tarif belum lengkap")
)

var hundred = decimal.NewFromInt(100)

// Validate checks that rate resolution supplied every value the settlement
// needs. Defaulting is the ConfigurationProvider's job; a gap here means a
// deployment defect, so callers should surface it as an operational error.
func (r RateConfiguration) Validate() error {
	if r.WeekdayMinimum.Sign() <= 0 {
		return fmt.Errorf("%w: weekdayMinimum", ErrConfigurationMissing)
	}
	if r.SundayMinimum.Sign() <= 0 {
		return fmt.Errorf("%w: sundayMinimum", ErrConfigurationMissing)
	}
	if r.DriverBasePay.Sign() <= 0 {
		return fmt.Errorf("%w: driverBasePay", ErrConfigurationMissing)
	}
	if r.OperatorSharePercent.IsNegative() || r.OperatorSharePercent.GreaterThan(hundred) {
		return fmt.Errorf("%w: operatorSharePercent di luar 0-100", ErrConfigurationMissing)
	}
	if r.DriverSharePercent.IsNegative() || r.DriverSharePercent.GreaterThan(hundred) {
		return fmt.Errorf("%w: driverSharePercent di luar 0-100", ErrConfigurationMissing)
	}
	if r.SuspensionThreshold <= 0 {
		return fmt.Errorf("%w: suspensionThreshold", ErrConfigurationMissing)
	}
	return nil
}

func (e DailyEntry) validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: tanggal wajib diisi", ErrInvalidInput)
	}
	if e.GrossCollection.IsNegative() {
		return fmt.Errorf("%w: grossCollection negatif", ErrInvalidInput)
	}
	if e.DieselCost.IsNegative() {
		return fmt.Errorf("%w: dieselCost negatif", ErrInvalidInput)
	}
	if e.CooperativeContribution.IsNegative() {
		return fmt.Errorf("%w: cooperativeContribution negatif", ErrInvalidInput)
	}
	if e.OtherExpenses.IsNegative() {
		return fmt.Errorf("%w: otherExpenses negatif", ErrInvalidInput)
	}
	return nil
}

// Settle splits one day's gross collection between driver and operator.
//
// Two mutually exclusive branches, selected by comparing the collection to
// the date-derived minimum:
//
//   - below minimum (including a zero collection): the driver payout is the
//     operator-supplied manual share, and the operator keeps whatever is left
//     after diesel, cooperative contribution, other expenses and that share.
//     The remainder may be negative and is deliberately not clamped.
//
//   - at or above minimum: the driver gets base pay plus their percentage of
//     the excess, the operator gets the minimum minus base pay and costs plus
//     their percentage of the excess.
//
// Pure and deterministic: no I/O, no clock, no hidden defaults.
func Settle(entry DailyEntry, rates RateConfiguration) (SettlementResult, error) {
	if err := rates.Validate(); err != nil {
		return SettlementResult{}, err
	}
	if err := entry.validate(); err != nil {
		return SettlementResult{}, err
	}

	minimum := rates.MinimumFor(entry.Date)

	if entry.GrossCollection.LessThan(minimum) {
		if entry.ManualDriverShare == nil {
			return SettlementResult{}, fmt.Errorf("%w: manualDriverShare wajib diisi saat setoran di bawah minimum", ErrInvalidInput)
		}
		driverShare := *entry.ManualDriverShare
		operatorShare := entry.GrossCollection.
			Sub(entry.DieselCost).
			Sub(entry.CooperativeContribution).
			Sub(entry.OtherExpenses).
			Sub(driverShare)

		return SettlementResult{
			MinimumCollection: minimum,
			ExcessCollection:  decimal.Zero,
			DriverShare:       driverShare,
			OperatorShare:     operatorShare,
			NetResidual:       decimal.Zero,
			BelowMinimum:      true,
		}, nil
	}

	excess := entry.GrossCollection.Sub(minimum)

	driverExtra := excess.Mul(rates.DriverSharePercent).Div(hundred).Round(2)
	driverShare := rates.DriverBasePay.Add(driverExtra)

	operatorExtra := excess.Mul(rates.OperatorSharePercent).Div(hundred).Round(2)
	operatorShare := minimum.
		Sub(rates.DriverBasePay).
		Sub(entry.DieselCost).
		Sub(entry.CooperativeContribution).
		Add(operatorExtra)

	residual := entry.GrossCollection.
		Sub(driverShare).
		Sub(operatorShare).
		Sub(entry.DieselCost).
		Sub(entry.CooperativeContribution).
		Sub(entry.OtherExpenses)

	return SettlementResult{
		MinimumCollection: minimum,
		ExcessCollection:  excess,
		DriverShare:       driverShare,
		OperatorShare:     operatorShare,
		NetResidual:       residual,
		BelowMinimum:      false,
	}, nil
}
