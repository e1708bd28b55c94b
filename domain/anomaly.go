package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Suspicion requires both a significant revenue shortfall and a
// disproportionately high fuel ratio on the same record. A single weak
// signal never flags a driver.
var (
	deviationFloor   = decimal.NewFromInt(-20)
	dieselRatioScale = decimal.NewFromFloat(1.2)
)

// Analyze computes fleet/day/driver statistics over a window of persisted
// records. Pure given its inputs; an empty window yields an empty report.
//
// A record with zero collection still pulls the fleet average down but is
// excluded from diesel-ratio averaging (its own ratio reports as 0).
func Analyze(records []DayRecord, rates RateConfiguration) AnomalyReport {
	days := groupByDate(records)

	report := AnomalyReport{
		DailyAnalysis: make([]DayAnalysis, 0, len(days)),
		DriverSummary: []DriverSummary{},
	}
	report.Summary.SuspensionThreshold = rates.SuspensionThreshold

	perDriver := map[int64][]RecordAnalysis{}
	driverNames := map[int64]string{}

	for _, group := range days {
		day := analyzeDay(group, rates)
		report.DailyAnalysis = append(report.DailyAnalysis, day)

		for _, rec := range day.Records {
			report.Summary.TotalRecords++
			if rec.BelowMinimum {
				report.Summary.TotalBelowMinimum++
			}
			if rec.Suspicious {
				report.Summary.TotalSuspicious++
			}
			perDriver[rec.DriverID] = append(perDriver[rec.DriverID], rec)
			driverNames[rec.DriverID] = rec.DriverName
		}
	}

	for id, recs := range perDriver {
		report.DriverSummary = append(report.DriverSummary, summarizeDriver(id, driverNames[id], recs, rates))
	}
	for _, d := range report.DriverSummary {
		if d.QualifiesForSuspension {
			report.Summary.DriversAtRisk++
		}
	}

	// Worst offenders first; driver id keeps equal counts deterministic.
	sort.SliceStable(report.DriverSummary, func(i, j int) bool {
		a, b := report.DriverSummary[i], report.DriverSummary[j]
		if a.BelowMinimumCount != b.BelowMinimumCount {
			return a.BelowMinimumCount > b.BelowMinimumCount
		}
		return a.DriverID < b.DriverID
	})

	return report
}

type dayGroup struct {
	date    time.Time
	records []DayRecord
}

// groupByDate buckets records per calendar date (datetime portion ignored)
// and returns groups in ascending date order.
func groupByDate(records []DayRecord) []dayGroup {
	byDate := map[string][]DayRecord{}
	dates := map[string]time.Time{}
	for _, r := range records {
		d := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, r.Date.Location())
		key := d.Format("2006-01-02")
		byDate[key] = append(byDate[key], r)
		dates[key] = d
	}

	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]dayGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, dayGroup{date: dates[k], records: byDate[k]})
	}
	return out
}

func analyzeDay(group dayGroup, rates RateConfiguration) DayAnalysis {
	isSunday := group.date.Weekday() == time.Sunday
	minimum := rates.MinimumFor(group.date)

	day := DayAnalysis{
		Date:              group.date,
		IsSunday:          isSunday,
		MinimumCollection: minimum,
		Records:           make([]RecordAnalysis, 0, len(group.records)),
	}

	var sumCollection, sumDiesel, sumRatio decimal.Decimal
	ratioCount := 0
	for _, r := range group.records {
		sumCollection = sumCollection.Add(r.GrossCollection)
		sumDiesel = sumDiesel.Add(r.DieselCost)
		if r.GrossCollection.Sign() > 0 {
			sumRatio = sumRatio.Add(r.DieselCost.Div(r.GrossCollection))
			ratioCount++
		}
	}

	n := decimal.NewFromInt(int64(len(group.records)))
	day.FleetAvgCollection = sumCollection.Div(n)
	day.FleetAvgDieselCost = sumDiesel.Div(n)
	if ratioCount > 0 {
		day.FleetAvgDieselRatio = sumRatio.Div(decimal.NewFromInt(int64(ratioCount)))
	}

	// A collective shortfall is not evidence of individual misconduct.
	day.SlowDay = day.FleetAvgCollection.LessThan(minimum)

	ratioCeiling := day.FleetAvgDieselRatio.Mul(dieselRatioScale)
	for _, r := range group.records {
		rec := RecordAnalysis{
			Date:            group.date,
			BusCode:         r.BusCode,
			DriverID:        r.DriverID,
			DriverName:      r.DriverName,
			GrossCollection: r.GrossCollection,
			DieselCost:      r.DieselCost,
			BelowMinimum:    r.GrossCollection.LessThan(minimum),
		}

		if r.GrossCollection.Sign() > 0 {
			rec.DieselRatio = r.DieselCost.Div(r.GrossCollection)
		}
		if day.FleetAvgCollection.Sign() > 0 {
			rec.DeviationPercent = r.GrossCollection.
				Sub(day.FleetAvgCollection).
				Div(day.FleetAvgCollection).
				Mul(hundred)
		}
		if r.OdometerEnd > r.OdometerStart && r.DieselLiters.Sign() > 0 {
			kml := decimal.NewFromInt(r.OdometerEnd - r.OdometerStart).Div(r.DieselLiters)
			rec.KmPerLiter = &kml
		}

		rec.Suspicious = !day.SlowDay &&
			rec.DeviationPercent.LessThan(deviationFloor) &&
			rec.DieselRatio.GreaterThan(ratioCeiling)

		day.Records = append(day.Records, rec)
	}

	// Worst performers first for display.
	sort.SliceStable(day.Records, func(i, j int) bool {
		return day.Records[i].GrossCollection.LessThan(day.Records[j].GrossCollection)
	})

	return day
}

func summarizeDriver(id int64, name string, recs []RecordAnalysis, rates RateConfiguration) DriverSummary {
	sum := DriverSummary{
		DriverID:   id,
		DriverName: name,
		TotalDays:  len(recs),
	}

	var devSum, ratioSum decimal.Decimal
	for _, r := range recs {
		if r.BelowMinimum {
			sum.BelowMinimumCount++
		}
		if r.Suspicious {
			sum.SuspiciousDaysCount++
		}
		devSum = devSum.Add(r.DeviationPercent)
		ratioSum = ratioSum.Add(r.DieselRatio)
	}
	n := decimal.NewFromInt(int64(len(recs)))
	sum.AvgDeviation = devSum.Div(n)
	sum.AvgDieselRatio = ratioSum.Div(n)
	sum.QualifiesForSuspension = sum.BelowMinimumCount >= rates.SuspensionThreshold

	worst := make([]RecordAnalysis, len(recs))
	copy(worst, recs)
	sort.SliceStable(worst, func(i, j int) bool {
		return worst[i].DeviationPercent.LessThan(worst[j].DeviationPercent)
	})
	if len(worst) > 3 {
		worst = worst[:3]
	}
	sum.WorstDays = worst

	return sum
}
