package repositories

import (
	"database/sql"
	"strings"

	"armada/domain"
	intconfig "armada/internal/config"
	"armada/internal/utils"

	"github.com/shopspring/decimal"
)

// DailyEntryRecord is one persisted setoran row including the computed split.
// The share fields are written once by the settlement step and re-written on
// edit; they are never derived anywhere else.
type DailyEntryRecord struct {
	ID                      int64            `json:"id"`
	EntryDate               string           `json:"entryDate"` // YYYY-MM-DD
	BusID                   int64            `json:"busId"`
	BusCode                 string           `json:"busCode"`
	DriverID                int64            `json:"driverId"`
	DriverName              string           `json:"driverName"`
	RouteID                 int64            `json:"routeId"`
	GrossCollection         decimal.Decimal  `json:"grossCollection"`
	DieselCost              decimal.Decimal  `json:"dieselCost"`
	DieselLiters            decimal.Decimal  `json:"dieselLiters"`
	CooperativeContribution decimal.Decimal  `json:"cooperativeContribution"`
	OtherExpenses           decimal.Decimal  `json:"otherExpenses"`
	ManualDriverShare       *decimal.Decimal `json:"manualDriverShare,omitempty"`
	OdometerStart           int64            `json:"odometerStart"`
	OdometerEnd             int64            `json:"odometerEnd"`

	MinimumCollection decimal.Decimal `json:"minimumCollection"`
	ExcessCollection  decimal.Decimal `json:"excessCollection"`
	DriverShare       decimal.Decimal `json:"driverShare"`
	OperatorShare     decimal.Decimal `json:"operatorShare"`
	NetResidual       decimal.Decimal `json:"netResidual"`
	BelowMinimum      bool            `json:"belowMinimum"`

	CreatedAt string `json:"createdAt"`
}

// DailyEntryFilter narrows List output. Empty fields are skipped.
type DailyEntryFilter struct {
	StartDate string
	EndDate   string
	BusID     int64
	DriverID  int64
}

type DailyEntryRepository struct {
	DB *sql.DB
}

func (r DailyEntryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const dailyEntryColumns = `
	e.id,
	DATE_FORMAT(e.entry_date, '%Y-%m-%d'),
	e.bus_id,
	COALESCE(b.code, ''),
	e.driver_id,
	COALESCE(d.name, ''),
	e.route_id,
	e.gross_collection,
	e.diesel_cost,
	e.diesel_liters,
	e.coop_contribution,
	e.other_expenses,
	e.manual_driver_share,
	e.odometer_start,
	e.odometer_end,
	e.minimum_collection,
	e.excess_collection,
	e.driver_share,
	e.operator_share,
	e.net_residual,
	e.below_minimum,
	COALESCE(DATE_FORMAT(e.created_at, '%Y-%m-%d %H:%i:%s'), '')`

const dailyEntryJoins = `
	FROM daily_entries e
	LEFT JOIN buses b ON b.id = e.bus_id
	LEFT JOIN drivers d ON d.id = e.driver_id`

func scanDailyEntry(scan func(dest ...any) error) (DailyEntryRecord, error) {
	var rec DailyEntryRecord
	var manual decimal.NullDecimal
	err := scan(
		&rec.ID,
		&rec.EntryDate,
		&rec.BusID,
		&rec.BusCode,
		&rec.DriverID,
		&rec.DriverName,
		&rec.RouteID,
		&rec.GrossCollection,
		&rec.DieselCost,
		&rec.DieselLiters,
		&rec.CooperativeContribution,
		&rec.OtherExpenses,
		&manual,
		&rec.OdometerStart,
		&rec.OdometerEnd,
		&rec.MinimumCollection,
		&rec.ExcessCollection,
		&rec.DriverShare,
		&rec.OperatorShare,
		&rec.NetResidual,
		&rec.BelowMinimum,
		&rec.CreatedAt,
	)
	if err != nil {
		return rec, err
	}
	if manual.Valid {
		v := manual.Decimal
		rec.ManualDriverShare = &v
	}
	return rec, nil
}

func (r DailyEntryRepository) GetByID(id int64) (DailyEntryRecord, error) {
	if id <= 0 {
		return DailyEntryRecord{}, sql.ErrNoRows
	}
	row := r.db().QueryRow(`SELECT `+dailyEntryColumns+dailyEntryJoins+` WHERE e.id = ? LIMIT 1`, id)
	return scanDailyEntry(row.Scan)
}

// List returns entries newest-first within the filter.
func (r DailyEntryRepository) List(f DailyEntryFilter) ([]DailyEntryRecord, error) {
	where := []string{"1=1"}
	args := []any{}
	if strings.TrimSpace(f.StartDate) != "" {
		where = append(where, "e.entry_date >= ?")
		args = append(args, strings.TrimSpace(f.StartDate))
	}
	if strings.TrimSpace(f.EndDate) != "" {
		where = append(where, "e.entry_date <= ?")
		args = append(args, strings.TrimSpace(f.EndDate))
	}
	if f.BusID > 0 {
		where = append(where, "e.bus_id = ?")
		args = append(args, f.BusID)
	}
	if f.DriverID > 0 {
		where = append(where, "e.driver_id = ?")
		args = append(args, f.DriverID)
	}

	rows, err := r.db().Query(
		`SELECT `+dailyEntryColumns+dailyEntryJoins+` WHERE `+strings.Join(where, " AND ")+
			` ORDER BY e.entry_date DESC, e.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DailyEntryRecord{}
	for rows.Next() {
		rec, err := scanDailyEntry(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Insert persists a new entry plus its computed split. The unique key on
// (bus_id, entry_date) serializes concurrent submissions for the same bus/day.
func (r DailyEntryRepository) Insert(rec DailyEntryRecord) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO daily_entries
			(entry_date, bus_id, driver_id, route_id,
			 gross_collection, diesel_cost, diesel_liters, coop_contribution, other_expenses,
			 manual_driver_share, odometer_start, odometer_end,
			 minimum_collection, excess_collection, driver_share, operator_share, net_residual, below_minimum,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		rec.EntryDate, rec.BusID, rec.DriverID, rec.RouteID,
		rec.GrossCollection, rec.DieselCost, rec.DieselLiters, rec.CooperativeContribution, rec.OtherExpenses,
		nullDecimal(rec.ManualDriverShare), rec.OdometerStart, rec.OdometerEnd,
		rec.MinimumCollection, rec.ExcessCollection, rec.DriverShare, rec.OperatorShare, rec.NetResidual, rec.BelowMinimum,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites the raw fields and the recomputed split for an entry.
func (r DailyEntryRepository) Update(rec DailyEntryRecord) error {
	_, err := r.db().Exec(`
		UPDATE daily_entries
		SET entry_date=?, bus_id=?, driver_id=?, route_id=?,
		    gross_collection=?, diesel_cost=?, diesel_liters=?, coop_contribution=?, other_expenses=?,
		    manual_driver_share=?, odometer_start=?, odometer_end=?,
		    minimum_collection=?, excess_collection=?, driver_share=?, operator_share=?, net_residual=?, below_minimum=?,
		    updated_at=NOW()
		WHERE id=?
	`,
		rec.EntryDate, rec.BusID, rec.DriverID, rec.RouteID,
		rec.GrossCollection, rec.DieselCost, rec.DieselLiters, rec.CooperativeContribution, rec.OtherExpenses,
		nullDecimal(rec.ManualDriverShare), rec.OdometerStart, rec.OdometerEnd,
		rec.MinimumCollection, rec.ExcessCollection, rec.DriverShare, rec.OperatorShare, rec.NetResidual, rec.BelowMinimum,
		rec.ID,
	)
	return err
}

func (r DailyEntryRepository) Delete(id int64) (bool, error) {
	res, err := r.db().Exec(`DELETE FROM daily_entries WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListSnapshots materializes the date-bounded window the anomaly analysis
// reads. Both bounds are optional (open-ended window).
func (r DailyEntryRepository) ListSnapshots(startDate, endDate string) ([]domain.DayRecord, error) {
	where := []string{"1=1"}
	args := []any{}
	if strings.TrimSpace(startDate) != "" {
		where = append(where, "e.entry_date >= ?")
		args = append(args, strings.TrimSpace(startDate))
	}
	if strings.TrimSpace(endDate) != "" {
		where = append(where, "e.entry_date <= ?")
		args = append(args, strings.TrimSpace(endDate))
	}

	rows, err := r.db().Query(`
		SELECT
			DATE_FORMAT(e.entry_date, '%Y-%m-%d'),
			COALESCE(b.code, ''),
			e.driver_id,
			COALESCE(d.name, ''),
			e.gross_collection,
			e.diesel_cost,
			e.diesel_liters,
			e.odometer_start,
			e.odometer_end
		`+dailyEntryJoins+`
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY e.entry_date ASC, e.id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.DayRecord{}
	for rows.Next() {
		var rec domain.DayRecord
		var dateStr string
		if err := rows.Scan(
			&dateStr,
			&rec.BusCode,
			&rec.DriverID,
			&rec.DriverName,
			&rec.GrossCollection,
			&rec.DieselCost,
			&rec.DieselLiters,
			&rec.OdometerStart,
			&rec.OdometerEnd,
		); err != nil {
			return out, err
		}
		date, err := utils.ParseDate(dateStr)
		if err != nil {
			return out, err
		}
		rec.Date = date
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}
