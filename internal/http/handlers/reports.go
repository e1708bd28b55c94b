package handlers

import (
	"net/http"
	"strconv"

	intdomain "armada/internal/domain"
	"armada/internal/http/middleware"
	"armada/internal/repositories"
	"armada/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Repo  repositories.DailyEntryRepository
	Rates services.RatesService
}

func (h ReportHandler) anomalyService(c *gin.Context) services.AnomalyService {
	return services.AnomalyService{
		EntryRepo: h.Repo,
		Rates:     h.Rates,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/reports/anomalies?startDate=&endDate=
func (h ReportHandler) Anomalies(c *gin.Context) {
	report, err := h.anomalyService(c).Report(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/reports/anomalies/pdf?startDate=&endDate=
func (h ReportHandler) AnomaliesPDF(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	report, err := h.anomalyService(c).Report(startDate, endDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	exporter := services.ExportService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := exporter.AnomalyReportPDF(report, startDate, endDate)
	if err != nil {
		RespondDomainError(c, intdomain.InternalError{Msg: "gagal membuat PDF laporan", Err: err})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/reports/finance?startDate=&endDate=&busId=&driverId=
func (h ReportHandler) Finance(c *gin.Context) {
	var busID, driverID int64
	if v := c.Query("busId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			RespondDomainError(c, intdomain.ValidationError{Field: "busId", Msg: "harus angka"})
			return
		}
		busID = id
	}
	if v := c.Query("driverId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			RespondDomainError(c, intdomain.ValidationError{Field: "driverId", Msg: "harus angka"})
			return
		}
		driverID = id
	}

	svc := services.ReportsService{EntryRepo: h.Repo}
	report, err := svc.Finance(c.Query("startDate"), c.Query("endDate"), busID, driverID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
