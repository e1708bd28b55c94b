package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	intdomain "armada/internal/domain"
	"armada/internal/http/middleware"
	"armada/internal/repositories"
	"armada/internal/services"
	"armada/internal/utils"

	"github.com/gin-gonic/gin"
)

type DailyEntryHandler struct {
	Repo  repositories.DailyEntryRepository
	Rates services.RatesService
}

func (h DailyEntryHandler) service(c *gin.Context) services.SettlementService {
	return services.SettlementService{
		EntryRepo: h.Repo,
		Rates:     h.Rates,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/daily-entries?startDate=&endDate=&busId=&driverId=
func (h DailyEntryHandler) List(c *gin.Context) {
	filter := repositories.DailyEntryFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	if v := c.Query("busId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			RespondDomainError(c, intdomain.ValidationError{Field: "busId", Msg: "harus angka"})
			return
		}
		filter.BusID = id
	}
	if v := c.Query("driverId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			RespondDomainError(c, intdomain.ValidationError{Field: "driverId", Msg: "harus angka"})
			return
		}
		filter.DriverID = id
	}

	entries, err := h.Repo.List(filter)
	if err != nil {
		RespondDomainError(c, intdomain.InternalError{Msg: "gagal mengambil data setoran", Err: err})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GET /api/daily-entries/:id
func (h DailyEntryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondDomainError(c, intdomain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}

	rec, err := h.Repo.GetByID(id)
	if err == sql.ErrNoRows {
		RespondDomainError(c, intdomain.NotFoundError{Resource: "setoran harian"})
		return
	}
	if err != nil {
		RespondDomainError(c, intdomain.InternalError{Msg: "gagal membaca setoran", Err: err})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /api/daily-entries/preview menghitung pembagian tanpa menyimpan.
// Dipakai form setoran untuk menampilkan rekap sebelum submit.
func (h DailyEntryHandler) Preview(c *gin.Context) {
	var input services.DailyEntryInput
	if !BindJSONOrError(c, &input) {
		return
	}

	result, err := h.service(c).Preview(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/daily-entries
func (h DailyEntryHandler) Create(c *gin.Context) {
	var input services.DailyEntryInput
	if !BindJSONOrError(c, &input) {
		return
	}

	rec, err := h.service(c).Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// PUT /api/daily-entries/:id
func (h DailyEntryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondDomainError(c, intdomain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}

	var input services.DailyEntryInput
	if !BindJSONOrError(c, &input) {
		return
	}

	rec, err := h.service(c).Update(id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DELETE /api/daily-entries/:id
func (h DailyEntryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondDomainError(c, intdomain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}

	deleted, err := h.Repo.Delete(id)
	if err != nil {
		RespondDomainError(c, intdomain.InternalError{Msg: "gagal menghapus setoran", Err: err})
		return
	}
	if !deleted {
		RespondDomainError(c, intdomain.NotFoundError{Resource: "setoran harian"})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "settlement", "delete", "id="+strconv.FormatInt(id, 10))
	c.JSON(http.StatusOK, gin.H{"message": "setoran berhasil dihapus"})
}
