package handlers

import (
	"log"
	"net/http"
	"strconv"

	intconfig "armada/internal/config"

	"github.com/gin-gonic/gin"
)

type MaintenanceRecord struct {
	ID          int64  `json:"id"`
	BusID       int64  `json:"busId"`
	BusCode     string `json:"busCode"`
	ServiceDate string `json:"serviceDate"`
	Description string `json:"description"`
	Workshop    string `json:"workshop"`
	Cost        string `json:"cost"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// GET /api/maintenance
func GetMaintenanceRecords(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT
			m.id,
			COALESCE(m.bus_id, 0),
			COALESCE(b.code, ''),
			COALESCE(DATE_FORMAT(m.service_date, '%Y-%m-%d'), ''),
			COALESCE(m.description, ''),
			COALESCE(m.workshop, ''),
			COALESCE(m.cost, 0),
			COALESCE(m.status, ''),
			COALESCE(DATE_FORMAT(m.created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM maintenance_records m
		LEFT JOIN buses b ON b.id = m.bus_id
		ORDER BY m.service_date DESC, m.id DESC
	`)
	if err != nil {
		log.Println("GetMaintenanceRecords query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data perawatan: " + err.Error()})
		return
	}
	defer rows.Close()

	records := []MaintenanceRecord{}
	for rows.Next() {
		var m MaintenanceRecord
		if err := rows.Scan(
			&m.ID, &m.BusID, &m.BusCode, &m.ServiceDate,
			&m.Description, &m.Workshop, &m.Cost, &m.Status, &m.CreatedAt,
		); err != nil {
			log.Println("GetMaintenanceRecords scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data perawatan: " + err.Error()})
			return
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data perawatan: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

// POST /api/maintenance
func CreateMaintenanceRecord(c *gin.Context) {
	var input MaintenanceRecord
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.BusID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "busId wajib diisi"})
		return
	}
	if input.ServiceDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tanggal servis wajib diisi"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO maintenance_records (bus_id, service_date, description, workshop, cost, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
	`, input.BusID, input.ServiceDate, input.Description, input.Workshop, input.Cost, input.Status)
	if err != nil {
		log.Println("CreateMaintenanceRecord insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan data perawatan: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

// PUT /api/maintenance/:id
func UpdateMaintenanceRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var input MaintenanceRecord
	if !BindJSONOrError(c, &input) {
		return
	}

	if _, err = intconfig.DB.Exec(`
		UPDATE maintenance_records
		SET bus_id=?, service_date=?, description=?, workshop=?, cost=?, status=?
		WHERE id=?
	`, input.BusID, input.ServiceDate, input.Description, input.Workshop, input.Cost, input.Status, id); err != nil {
		log.Println("UpdateMaintenanceRecord update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengupdate data perawatan: " + err.Error()})
		return
	}

	input.ID = id
	c.JSON(http.StatusOK, input)
}

// DELETE /api/maintenance/:id
func DeleteMaintenanceRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM maintenance_records WHERE id = ?`, id)
	if err != nil {
		log.Println("DeleteMaintenanceRecord delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus data perawatan: " + err.Error()})
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "data perawatan tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "data perawatan berhasil dihapus"})
}
