package repositories

import (
	"database/sql"

	intconfig "armada/internal/config"

	"github.com/shopspring/decimal"
)

// RateSetting is one tarif row. RouteID 0 means the global row every route
// without an override falls back to.
type RateSetting struct {
	ID                   int64           `json:"id"`
	RouteID              int64           `json:"routeId"`
	WeekdayMinimum       decimal.Decimal `json:"weekdayMinimum"`
	SundayMinimum        decimal.Decimal `json:"sundayMinimum"`
	DriverBasePay        decimal.Decimal `json:"driverBasePay"`
	OperatorSharePercent decimal.Decimal `json:"operatorSharePercent"`
	DriverSharePercent   decimal.Decimal `json:"driverSharePercent"`
	SuspensionThreshold  int             `json:"suspensionThreshold"`
}

type RateRepository struct {
	DB *sql.DB
}

func (r RateRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const rateColumns = `
	id,
	COALESCE(route_id, 0),
	weekday_minimum,
	sunday_minimum,
	driver_base_pay,
	operator_share_percent,
	driver_share_percent,
	suspension_threshold`

func scanRate(row *sql.Row) (RateSetting, error) {
	var s RateSetting
	err := row.Scan(
		&s.ID,
		&s.RouteID,
		&s.WeekdayMinimum,
		&s.SundayMinimum,
		&s.DriverBasePay,
		&s.OperatorSharePercent,
		&s.DriverSharePercent,
		&s.SuspensionThreshold,
	)
	return s, err
}

// GetGlobal loads the single global tarif row (route_id NULL).
func (r RateRepository) GetGlobal() (RateSetting, error) {
	row := r.db().QueryRow(`SELECT ` + rateColumns + ` FROM rate_settings WHERE route_id IS NULL LIMIT 1`)
	return scanRate(row)
}

// GetByRoute loads the per-route override row if one exists.
func (r RateRepository) GetByRoute(routeID int64) (RateSetting, error) {
	row := r.db().QueryRow(`SELECT `+rateColumns+` FROM rate_settings WHERE route_id = ? LIMIT 1`, routeID)
	return scanRate(row)
}

// List returns all tarif rows, global row first.
func (r RateRepository) List() ([]RateSetting, error) {
	rows, err := r.db().Query(`SELECT ` + rateColumns + ` FROM rate_settings ORDER BY route_id IS NOT NULL, route_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RateSetting{}
	for rows.Next() {
		var s RateSetting
		if err := rows.Scan(
			&s.ID,
			&s.RouteID,
			&s.WeekdayMinimum,
			&s.SundayMinimum,
			&s.DriverBasePay,
			&s.OperatorSharePercent,
			&s.DriverSharePercent,
			&s.SuspensionThreshold,
		); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Upsert writes a tarif row keyed by route (0 = global).
func (r RateRepository) Upsert(s RateSetting) (RateSetting, error) {
	db := r.db()

	var existingID int64
	var err error
	if s.RouteID > 0 {
		err = db.QueryRow(`SELECT id FROM rate_settings WHERE route_id = ? LIMIT 1`, s.RouteID).Scan(&existingID)
	} else {
		err = db.QueryRow(`SELECT id FROM rate_settings WHERE route_id IS NULL LIMIT 1`).Scan(&existingID)
	}
	if err != nil && err != sql.ErrNoRows {
		return s, err
	}

	routeArg := any(nil)
	if s.RouteID > 0 {
		routeArg = s.RouteID
	}

	if existingID == 0 {
		res, err := db.Exec(`
			INSERT INTO rate_settings
				(route_id, weekday_minimum, sunday_minimum, driver_base_pay,
				 operator_share_percent, driver_share_percent, suspension_threshold, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
		`, routeArg, s.WeekdayMinimum, s.SundayMinimum, s.DriverBasePay,
			s.OperatorSharePercent, s.DriverSharePercent, s.SuspensionThreshold)
		if err != nil {
			return s, err
		}
		s.ID, _ = res.LastInsertId()
		return s, nil
	}

	_, err = db.Exec(`
		UPDATE rate_settings
		SET weekday_minimum=?, sunday_minimum=?, driver_base_pay=?,
		    operator_share_percent=?, driver_share_percent=?, suspension_threshold=?, updated_at=NOW()
		WHERE id=?
	`, s.WeekdayMinimum, s.SundayMinimum, s.DriverBasePay,
		s.OperatorSharePercent, s.DriverSharePercent, s.SuspensionThreshold, existingID)
	if err != nil {
		return s, err
	}
	s.ID = existingID
	return s, nil
}

// DeleteRouteOverride removes a per-route tarif row. The global row cannot be
// deleted through this path.
func (r RateRepository) DeleteRouteOverride(routeID int64) (bool, error) {
	if routeID <= 0 {
		return false, nil
	}
	res, err := r.db().Exec(`DELETE FROM rate_settings WHERE route_id = ?`, routeID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
