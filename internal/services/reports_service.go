package services

import (
	intdomain "armada/internal/domain"
	"armada/internal/repositories"

	"github.com/shopspring/decimal"
)

// FinanceReport is the period rollup for the bookkeeping screen.
type FinanceReport struct {
	StartDate          string          `json:"startDate"`
	EndDate            string          `json:"endDate"`
	TotalEntries       int             `json:"totalEntries"`
	TotalCollection    decimal.Decimal `json:"totalCollection"`
	TotalDieselCost    decimal.Decimal `json:"totalDieselCost"`
	TotalCoopFund      decimal.Decimal `json:"totalCoopFund"`
	TotalOtherExpenses decimal.Decimal `json:"totalOtherExpenses"`
	TotalDriverShare   decimal.Decimal `json:"totalDriverShare"`
	TotalOperatorShare decimal.Decimal `json:"totalOperatorShare"`
	BelowMinimumCount  int             `json:"belowMinimumCount"`
	Entries            []repositories.DailyEntryRecord `json:"entries"`
}

type ReportsService struct {
	EntryRepo repositories.DailyEntryRepository
}

// Finance sums collections, costs and shares over the window.
func (s ReportsService) Finance(startDate, endDate string, busID, driverID int64) (FinanceReport, error) {
	entries, err := s.EntryRepo.List(repositories.DailyEntryFilter{
		StartDate: startDate,
		EndDate:   endDate,
		BusID:     busID,
		DriverID:  driverID,
	})
	if err != nil {
		return FinanceReport{}, intdomain.InternalError{Msg: "gagal membaca data setoran", Err: err}
	}

	report := FinanceReport{
		StartDate:    startDate,
		EndDate:      endDate,
		TotalEntries: len(entries),
		Entries:      entries,
	}
	for _, e := range entries {
		report.TotalCollection = report.TotalCollection.Add(e.GrossCollection)
		report.TotalDieselCost = report.TotalDieselCost.Add(e.DieselCost)
		report.TotalCoopFund = report.TotalCoopFund.Add(e.CooperativeContribution)
		report.TotalOtherExpenses = report.TotalOtherExpenses.Add(e.OtherExpenses)
		report.TotalDriverShare = report.TotalDriverShare.Add(e.DriverShare)
		report.TotalOperatorShare = report.TotalOperatorShare.Add(e.OperatorShare)
		if e.BelowMinimum {
			report.BelowMinimumCount++
		}
	}
	return report, nil
}
