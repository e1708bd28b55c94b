package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"armada/domain"
	intdomain "armada/internal/domain"
	"armada/internal/repositories"
	"armada/internal/utils"

	"github.com/shopspring/decimal"
)

// DailyEntryInput is the validated submission payload. Numeric fields arrive
// as strings from the form grid; an empty string means zero (the documented
// fallback), anything unparsable is rejected.
type DailyEntryInput struct {
	EntryDate               string `json:"entryDate" binding:"required"`
	BusID                   int64  `json:"busId" binding:"required"`
	DriverID                int64  `json:"driverId" binding:"required"`
	RouteID                 int64  `json:"routeId" binding:"required"`
	GrossCollection         string `json:"grossCollection" binding:"required"`
	DieselCost              string `json:"dieselCost"`
	DieselLiters            string `json:"dieselLiters"`
	CooperativeContribution string `json:"cooperativeContribution"`
	OtherExpenses           string `json:"otherExpenses"`
	ManualDriverShare       string `json:"manualDriverShare"`
	OdometerStart           int64  `json:"odometerStart"`
	OdometerEnd             int64  `json:"odometerEnd"`
}

// SettlementService wires the pure settlement engine to persistence. Every
// caller (submission, edit, preview) goes through the same Settle call so the
// formula cannot drift between paths.
type SettlementService struct {
	EntryRepo repositories.DailyEntryRepository
	Rates     RatesService
	RequestID string
}

// Preview computes the split without persisting anything. Used by the form's
// live recap so the browser never re-implements the formula.
func (s SettlementService) Preview(in DailyEntryInput) (domain.SettlementResult, error) {
	entry, _, err := s.buildEntry(in)
	if err != nil {
		return domain.SettlementResult{}, err
	}
	rates, err := s.Rates.Resolve(in.RouteID)
	if err != nil {
		return domain.SettlementResult{}, err
	}
	result, err := domain.Settle(entry, rates)
	if err != nil {
		return domain.SettlementResult{}, mapEngineError(err)
	}
	return result, nil
}

// Create settles and persists one daily entry.
func (s SettlementService) Create(in DailyEntryInput) (repositories.DailyEntryRecord, error) {
	rec, err := s.settleToRecord(in)
	if err != nil {
		return repositories.DailyEntryRecord{}, err
	}

	utils.LogEvent(s.RequestID, "settlement", "create",
		fmt.Sprintf("bus_id=%d date=%s below_min=%t", rec.BusID, rec.EntryDate, rec.BelowMinimum))

	id, err := s.EntryRepo.Insert(rec)
	if err != nil {
		if isDuplicateKey(err) {
			return repositories.DailyEntryRecord{}, intdomain.ConflictError{
				Resource: "setoran harian",
				Msg:      "sudah ada entri untuk bus dan tanggal tersebut",
			}
		}
		return repositories.DailyEntryRecord{}, intdomain.InternalError{Msg: "gagal menyimpan setoran", Err: err}
	}
	return s.EntryRepo.GetByID(id)
}

// Update re-runs the settlement for an edited entry and rewrites the row.
func (s SettlementService) Update(id int64, in DailyEntryInput) (repositories.DailyEntryRecord, error) {
	if _, err := s.EntryRepo.GetByID(id); err != nil {
		if err == sql.ErrNoRows {
			return repositories.DailyEntryRecord{}, intdomain.NotFoundError{Resource: "setoran harian"}
		}
		return repositories.DailyEntryRecord{}, intdomain.InternalError{Msg: "gagal membaca setoran", Err: err}
	}

	rec, err := s.settleToRecord(in)
	if err != nil {
		return repositories.DailyEntryRecord{}, err
	}
	rec.ID = id

	utils.LogEvent(s.RequestID, "settlement", "update",
		fmt.Sprintf("id=%d below_min=%t", id, rec.BelowMinimum))

	if err := s.EntryRepo.Update(rec); err != nil {
		return repositories.DailyEntryRecord{}, intdomain.InternalError{Msg: "gagal mengupdate setoran", Err: err}
	}
	return s.EntryRepo.GetByID(id)
}

func (s SettlementService) settleToRecord(in DailyEntryInput) (repositories.DailyEntryRecord, error) {
	entry, rec, err := s.buildEntry(in)
	if err != nil {
		return rec, err
	}

	rates, err := s.Rates.Resolve(in.RouteID)
	if err != nil {
		return rec, err
	}

	result, err := domain.Settle(entry, rates)
	if err != nil {
		return rec, mapEngineError(err)
	}

	rec.MinimumCollection = result.MinimumCollection
	rec.ExcessCollection = result.ExcessCollection
	rec.DriverShare = result.DriverShare
	rec.OperatorShare = result.OperatorShare
	rec.NetResidual = result.NetResidual
	rec.BelowMinimum = result.BelowMinimum
	if !result.BelowMinimum {
		// Manual share only applies to the branch it was entered for.
		rec.ManualDriverShare = nil
	}
	return rec, nil
}

// buildEntry parses and validates the raw payload into engine input plus the
// persistence row skeleton.
func (s SettlementService) buildEntry(in DailyEntryInput) (domain.DailyEntry, repositories.DailyEntryRecord, error) {
	var rec repositories.DailyEntryRecord

	date, err := utils.ParseDate(in.EntryDate)
	if err != nil {
		return domain.DailyEntry{}, rec, intdomain.ValidationError{Field: "entryDate", Msg: "format tanggal harus YYYY-MM-DD"}
	}
	if in.BusID <= 0 {
		return domain.DailyEntry{}, rec, intdomain.ValidationError{Field: "busId", Msg: "wajib diisi"}
	}
	if in.DriverID <= 0 {
		return domain.DailyEntry{}, rec, intdomain.ValidationError{Field: "driverId", Msg: "wajib diisi"}
	}
	if in.RouteID <= 0 {
		return domain.DailyEntry{}, rec, intdomain.ValidationError{Field: "routeId", Msg: "wajib diisi"}
	}

	gross, err := utils.ParseAmount(in.GrossCollection)
	if err != nil {
		return domain.DailyEntry{}, rec, intdomain.ValidationError{Field: "grossCollection", Msg: err.Error()}
	}
	diesel, err := utils.ParseAmountOrZero(in.DieselCost)
	if err != nil {
		return domain.DailyEntry{}, rec, intdomain.ValidationError{Field: "dieselCost", Msg: err.Error()}
	}
	liters, err := utils.ParseAmountOrZero(in.DieselLiters)
	if err != nil {
		return domain.DailyEntry{}, rec, intdomain.ValidationError{Field: "dieselLiters", Msg: err.Error()}
	}
	coop, err := utils.ParseAmountOrZero(in.CooperativeContribution)
	if err != nil {
		return domain.DailyEntry{}, rec, intdomain.ValidationError{Field: "cooperativeContribution", Msg: err.Error()}
	}
	other, err := utils.ParseAmountOrZero(in.OtherExpenses)
	if err != nil {
		return domain.DailyEntry{}, rec, intdomain.ValidationError{Field: "otherExpenses", Msg: err.Error()}
	}

	var manual *decimal.Decimal
	if strings.TrimSpace(in.ManualDriverShare) != "" {
		v, err := utils.ParseAmount(in.ManualDriverShare)
		if err != nil {
			return domain.DailyEntry{}, rec, intdomain.ValidationError{Field: "manualDriverShare", Msg: err.Error()}
		}
		manual = &v
	}

	// Iuran koperasi tidak ditarik pada hari Minggu.
	if date.Weekday() == time.Sunday {
		coop = decimal.Zero
	}

	entry := domain.DailyEntry{
		Date:                    date,
		GrossCollection:         gross,
		DieselCost:              diesel,
		CooperativeContribution: coop,
		OtherExpenses:           other,
		ManualDriverShare:       manual,
	}

	rec = repositories.DailyEntryRecord{
		EntryDate:               utils.FormatDate(date),
		BusID:                   in.BusID,
		DriverID:                in.DriverID,
		RouteID:                 in.RouteID,
		GrossCollection:         gross,
		DieselCost:              diesel,
		DieselLiters:            liters,
		CooperativeContribution: coop,
		OtherExpenses:           other,
		ManualDriverShare:       manual,
		OdometerStart:           in.OdometerStart,
		OdometerEnd:             in.OdometerEnd,
	}
	return entry, rec, nil
}

func mapEngineError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return intdomain.ValidationError{Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrConfigurationMissing):
		return intdomain.InternalError{Msg: err.Error(), Err: err}
	default:
		return intdomain.InternalError{Msg: "perhitungan setoran gagal", Err: err}
	}
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "1062")
}
