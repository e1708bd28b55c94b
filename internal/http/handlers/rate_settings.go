package handlers

import (
	"net/http"
	"strconv"

	intdomain "armada/internal/domain"
	"armada/internal/http/middleware"
	"armada/internal/repositories"
	"armada/internal/services"
	"armada/internal/utils"

	"github.com/gin-gonic/gin"
)

type RateSettingHandler struct {
	Repo repositories.RateRepository
}

// GET /api/rate-settings
func (h RateSettingHandler) List(c *gin.Context) {
	settings, err := h.Repo.List()
	if err != nil {
		RespondDomainError(c, intdomain.InternalError{Msg: "gagal mengambil data tarif", Err: err})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PUT /api/rate-settings menyimpan tarif global (routeId 0) atau override
// per trayek.
func (h RateSettingHandler) Upsert(c *gin.Context) {
	var input repositories.RateSetting
	if !BindJSONOrError(c, &input) {
		return
	}

	if err := services.ValidateSetting(input); err != nil {
		RespondDomainError(c, err)
		return
	}

	saved, err := h.Repo.Upsert(input)
	if err != nil {
		RespondDomainError(c, intdomain.InternalError{Msg: "gagal menyimpan tarif", Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "rates", "upsert",
		"tarif disimpan untuk routeId="+strconv.FormatInt(saved.RouteID, 10))
	c.JSON(http.StatusOK, saved)
}

// DELETE /api/rate-settings/:routeId menghapus override per trayek. Tarif
// global tidak bisa dihapus lewat endpoint ini.
func (h RateSettingHandler) DeleteOverride(c *gin.Context) {
	routeID, err := strconv.ParseInt(c.Param("routeId"), 10, 64)
	if err != nil || routeID <= 0 {
		RespondDomainError(c, intdomain.ValidationError{Field: "routeId", Msg: "routeId tidak valid"})
		return
	}

	deleted, err := h.Repo.DeleteRouteOverride(routeID)
	if err != nil {
		RespondDomainError(c, intdomain.InternalError{Msg: "gagal menghapus tarif trayek", Err: err})
		return
	}
	if !deleted {
		RespondDomainError(c, intdomain.NotFoundError{Resource: "tarif trayek"})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "rates", "delete",
		"override tarif dihapus untuk routeId="+strconv.FormatInt(routeID, 10))
	c.JSON(http.StatusOK, gin.H{"message": "tarif trayek berhasil dihapus"})
}
