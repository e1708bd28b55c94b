package api

import (
	"log"
	stdhttp "net/http"

	intconfig "armada/internal/config"
	h "armada/internal/http/handlers"
	"armada/internal/http/middleware"
	"armada/internal/repositories"
	"armada/internal/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	entryRepo := repositories.DailyEntryRepository{}
	rateRepo := repositories.RateRepository{}
	ratesSvc := services.RatesService{RateRepo: rateRepo}

	entries := h.DailyEntryHandler{Repo: entryRepo, Rates: ratesSvc}
	reports := h.ReportHandler{Repo: entryRepo, Rates: ratesSvc}
	rates := h.RateSettingHandler{Repo: rateRepo}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		secured := api.Group("")
		secured.Use(middleware.RequireAuth(h.JWTSecret()))
		{
			secured.GET("/auth/me", h.Me)

			// Armada
			secured.GET("/buses", h.GetBuses)
			secured.POST("/buses", h.CreateBus)
			secured.PUT("/buses/:id", h.UpdateBus)
			secured.DELETE("/buses/:id", h.DeleteBus)

			secured.GET("/drivers", h.GetDrivers)
			secured.POST("/drivers", h.CreateDriver)
			secured.PUT("/drivers/:id", h.UpdateDriver)
			secured.DELETE("/drivers/:id", h.DeleteDriver)

			secured.GET("/operators", h.GetOperators)
			secured.POST("/operators", h.CreateOperator)
			secured.PUT("/operators/:id", h.UpdateOperator)
			secured.DELETE("/operators/:id", h.DeleteOperator)

			secured.GET("/routes", h.GetRoutes)
			secured.POST("/routes", h.CreateRoute)
			secured.PUT("/routes/:id", h.UpdateRoute)
			secured.DELETE("/routes/:id", h.DeleteRoute)

			// Setoran harian
			secured.GET("/daily-entries", entries.List)
			secured.GET("/daily-entries/:id", entries.Get)
			secured.POST("/daily-entries", entries.Create)
			secured.POST("/daily-entries/preview", entries.Preview)
			secured.PUT("/daily-entries/:id", entries.Update)
			secured.DELETE("/daily-entries/:id", entries.Delete)

			// Laporan
			secured.GET("/reports/anomalies", reports.Anomalies)
			secured.GET("/reports/anomalies/pdf", reports.AnomaliesPDF)
			secured.GET("/reports/finance", reports.Finance)

			// Perawatan & sparepart
			secured.GET("/maintenance", h.GetMaintenanceRecords)
			secured.POST("/maintenance", h.CreateMaintenanceRecord)
			secured.PUT("/maintenance/:id", h.UpdateMaintenanceRecord)
			secured.DELETE("/maintenance/:id", h.DeleteMaintenanceRecord)

			secured.GET("/spare-parts", h.GetSpareParts)
			secured.POST("/spare-parts", h.CreateSparePart)
			secured.PUT("/spare-parts/:id", h.UpdateSparePart)
			secured.PUT("/spare-parts/:id/adjust-stock", h.AdjustSparePartStock)
			secured.DELETE("/spare-parts/:id", h.DeleteSparePart)

			// Hutang ke pengusaha
			secured.GET("/payables", h.GetPayables)
			secured.POST("/payables", h.CreatePayable)
			secured.PUT("/payables/:id", h.UpdatePayable)
			secured.PUT("/payables/:id/pay", h.MarkPayablePaid)
			secured.DELETE("/payables/:id", h.DeletePayable)

			// Admin saja
			admin := secured.Group("")
			admin.Use(middleware.RequireRoles("admin"))
			{
				admin.GET("/users", h.GetUsers)
				admin.PUT("/users/:id/role", h.UpdateUserRole)
				admin.DELETE("/users/:id", h.DeleteUser)

				admin.GET("/rate-settings", rates.List)
				admin.PUT("/rate-settings", rates.Upsert)
				admin.DELETE("/rate-settings/:routeId", rates.DeleteOverride)
			}
		}
	}

	return r
}
