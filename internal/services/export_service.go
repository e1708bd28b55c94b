package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"armada/domain"
	"armada/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ExportService renders reports into PDF for download from the admin grid.
type ExportService struct {
	RequestID string
}

// AnomalyReportPDF renders the fleet analysis as a printable document.
func (s ExportService) AnomalyReportPDF(report domain.AnomalyReport, startDate, endDate string) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "export", "anomaly_pdf",
		fmt.Sprintf("window=%s..%s", startDate, endDate))
	return buildAnomalyPDF(report, startDate, endDate)
}

func buildAnomalyPDF(report domain.AnomalyReport, startDate, endDate string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laporan Anomali Setoran", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "LAPORAN ANOMALI SETORAN ARMADA")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Periode  : %s s/d %s", safe(startDate, "awal"), safe(endDate, "sekarang")))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Dicetak  : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Ringkasan")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Total entri             : %d", report.Summary.TotalRecords),
		fmt.Sprintf("Di bawah minimum        : %d", report.Summary.TotalBelowMinimum),
		fmt.Sprintf("Terindikasi mencurigakan: %d", report.Summary.TotalSuspicious),
		fmt.Sprintf("Sopir berisiko suspensi : %d (ambang %d hari)",
			report.Summary.DriversAtRisk, report.Summary.SuspensionThreshold),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rekap per Sopir")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 6, "Sopir", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 6, "Hari", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "< Minimum", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Mencurigakan", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Deviasi Rata2", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Suspensi?", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, d := range report.DriverSummary {
		flag := "-"
		if d.QualifiesForSuspension {
			flag = "YA"
		}
		pdf.CellFormat(50, 6, safe(d.DriverName, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", d.TotalDays), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", d.BelowMinimumCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", d.SuspiciousDaysCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, d.AvgDeviation.Round(1).String()+"%", "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, flag, "1", 1, "C", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Analisis Harian")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, day := range report.DailyAnalysis {
		marker := ""
		if day.SlowDay {
			marker = " (hari sepi, flag individu ditangguhkan)"
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, fmt.Sprintf("%s  rata-rata %s / minimum %s%s",
			day.Date.Format("2006-01-02"),
			utils.FormatRupiah(day.FleetAvgCollection),
			utils.FormatRupiah(day.MinimumCollection),
			marker))
		pdf.Ln(6)

		pdf.SetFont("Helvetica", "", 10)
		for _, rec := range day.Records {
			tags := []string{}
			if rec.BelowMinimum {
				tags = append(tags, "di bawah minimum")
			}
			if rec.Suspicious {
				tags = append(tags, "MENCURIGAKAN")
			}
			suffix := ""
			if len(tags) > 0 {
				suffix = " [" + strings.Join(tags, ", ") + "]"
			}
			pdf.Cell(0, 5, fmt.Sprintf("  %s / %s: setoran %s, deviasi %s%%%s",
				rec.BusCode, safe(rec.DriverName, "-"),
				utils.FormatRupiah(rec.GrossCollection),
				rec.DeviationPercent.Round(1), suffix))
			pdf.Ln(5)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ANOMALI_%s_%s.pdf",
		safeFilenamePart(safe(startDate, "awal")),
		safeFilenamePart(safe(endDate, "akhir")))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(s))
	if out == "" {
		return "laporan"
	}
	return out
}
