package services

import (
	"fmt"

	"armada/domain"
	intdomain "armada/internal/domain"
	"armada/internal/repositories"
	"armada/internal/utils"
)

// AnomalyService pulls a read-consistent window of persisted entries and runs
// the fleet analysis over it. Analysis always uses the global tarif; per-route
// overrides do not apply to fleet-wide statistics.
type AnomalyService struct {
	EntryRepo repositories.DailyEntryRepository
	Rates     RatesService
	RequestID string
}

// Report analyzes the date-bounded window. Both bounds are optional.
func (s AnomalyService) Report(startDate, endDate string) (domain.AnomalyReport, error) {
	rates, err := s.Rates.Resolve(0)
	if err != nil {
		return domain.AnomalyReport{}, err
	}

	records, err := s.EntryRepo.ListSnapshots(startDate, endDate)
	if err != nil {
		return domain.AnomalyReport{}, intdomain.InternalError{Msg: "gagal membaca data setoran", Err: err}
	}

	report := domain.Analyze(records, rates)

	utils.LogEvent(s.RequestID, "anomaly", "report",
		fmt.Sprintf("window=%s..%s records=%d suspicious=%d at_risk=%d",
			startDate, endDate,
			report.Summary.TotalRecords,
			report.Summary.TotalSuspicious,
			report.Summary.DriversAtRisk))

	return report, nil
}
