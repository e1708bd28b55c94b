package services

import (
	"database/sql"

	"armada/domain"
	intdomain "armada/internal/domain"
	"armada/internal/repositories"

	"github.com/shopspring/decimal"
)

// Default tarif, seeded into the global settings row on first boot. These
// literals live here and nowhere else; every computation reads a resolved
// RateConfiguration, never a constant.
var defaultRates = repositories.RateSetting{
	WeekdayMinimum:       decimal.NewFromInt(6000),
	SundayMinimum:        decimal.NewFromInt(5000),
	DriverBasePay:        decimal.NewFromInt(800),
	OperatorSharePercent: decimal.NewFromInt(60),
	DriverSharePercent:   decimal.NewFromInt(40),
	SuspensionThreshold:  3,
}

// RatesService is the configuration provider: it resolves the effective
// tarif for a route before any settlement or analysis runs.
type RatesService struct {
	RateRepo repositories.RateRepository
}

// EnsureGlobalDefaults seeds the global row if the table is empty. Called at
// startup so a fresh deployment can settle entries immediately.
func (s RatesService) EnsureGlobalDefaults() error {
	_, err := s.RateRepo.GetGlobal()
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}
	_, err = s.RateRepo.Upsert(defaultRates)
	return err
}

// Resolve returns the effective tarif for a route: the per-route override
// when present, otherwise the global row. routeID 0 resolves straight to the
// global row (the analyzer path).
func (s RatesService) Resolve(routeID int64) (domain.RateConfiguration, error) {
	if routeID > 0 {
		setting, err := s.RateRepo.GetByRoute(routeID)
		if err == nil {
			return toConfiguration(setting)
		}
		if err != sql.ErrNoRows {
			return domain.RateConfiguration{}, intdomain.InternalError{Msg: "gagal membaca tarif trayek", Err: err}
		}
	}

	setting, err := s.RateRepo.GetGlobal()
	if err == sql.ErrNoRows {
		// Deployment defect, not a user error: defaults should have been
		// seeded at startup.
		return domain.RateConfiguration{}, intdomain.InternalError{Msg: "tarif global belum dikonfigurasi"}
	}
	if err != nil {
		return domain.RateConfiguration{}, intdomain.InternalError{Msg: "gagal membaca tarif global", Err: err}
	}
	return toConfiguration(setting)
}

func toConfiguration(s repositories.RateSetting) (domain.RateConfiguration, error) {
	cfg := domain.RateConfiguration{
		WeekdayMinimum:       s.WeekdayMinimum,
		SundayMinimum:        s.SundayMinimum,
		DriverBasePay:        s.DriverBasePay,
		OperatorSharePercent: s.OperatorSharePercent,
		DriverSharePercent:   s.DriverSharePercent,
		SuspensionThreshold:  s.SuspensionThreshold,
	}
	if err := cfg.Validate(); err != nil {
		return domain.RateConfiguration{}, intdomain.InternalError{Msg: "tarif tersimpan tidak lengkap", Err: err}
	}
	return cfg, nil
}

// ValidateSetting guards tarif writes. Split percentages are range-checked
// per field only; asymmetric splits (sum != 100) stay legal and simply leave
// a nonzero netResidual on settlements.
func ValidateSetting(s repositories.RateSetting) error {
	hundred := decimal.NewFromInt(100)
	if s.WeekdayMinimum.Sign() <= 0 {
		return intdomain.ValidationError{Field: "weekdayMinimum", Msg: "harus lebih dari 0"}
	}
	if s.SundayMinimum.Sign() <= 0 {
		return intdomain.ValidationError{Field: "sundayMinimum", Msg: "harus lebih dari 0"}
	}
	if s.DriverBasePay.Sign() <= 0 {
		return intdomain.ValidationError{Field: "driverBasePay", Msg: "harus lebih dari 0"}
	}
	if s.OperatorSharePercent.IsNegative() || s.OperatorSharePercent.GreaterThan(hundred) {
		return intdomain.ValidationError{Field: "operatorSharePercent", Msg: "harus di rentang 0-100"}
	}
	if s.DriverSharePercent.IsNegative() || s.DriverSharePercent.GreaterThan(hundred) {
		return intdomain.ValidationError{Field: "driverSharePercent", Msg: "harus di rentang 0-100"}
	}
	if s.SuspensionThreshold <= 0 {
		return intdomain.ValidationError{Field: "suspensionThreshold", Msg: "harus lebih dari 0"}
	}
	return nil
}
