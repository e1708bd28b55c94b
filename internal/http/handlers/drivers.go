package handlers

import (
	"log"
	"net/http"
	"strconv"

	intconfig "armada/internal/config"

	"github.com/gin-gonic/gin"
)

type Driver struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	LicenseNo string `json:"licenseNo"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// GET /api/drivers
func GetDrivers(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT
			id,
			COALESCE(name, ''),
			COALESCE(phone, ''),
			COALESCE(license_no, ''),
			COALESCE(status, ''),
			COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM drivers
		ORDER BY name ASC
	`)
	if err != nil {
		log.Println("GetDrivers query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data supir: " + err.Error()})
		return
	}
	defer rows.Close()

	drivers := []Driver{}
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNo, &d.Status, &d.CreatedAt); err != nil {
			log.Println("GetDrivers scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data supir: " + err.Error()})
			return
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data supir: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, drivers)
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var input Driver
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nama supir wajib diisi"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO drivers (name, phone, license_no, status, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`, input.Name, input.Phone, input.LicenseNo, input.Status)
	if err != nil {
		log.Println("CreateDriver insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat data supir: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var input Driver
	if !BindJSONOrError(c, &input) {
		return
	}

	if _, err = intconfig.DB.Exec(`
		UPDATE drivers SET name=?, phone=?, license_no=?, status=? WHERE id=?
	`, input.Name, input.Phone, input.LicenseNo, input.Status, id); err != nil {
		log.Println("UpdateDriver update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengupdate data supir: " + err.Error()})
		return
	}

	input.ID = id
	c.JSON(http.StatusOK, input)
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM drivers WHERE id = ?`, id)
	if err != nil {
		log.Println("DeleteDriver delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus data supir: " + err.Error()})
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "supir tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "supir berhasil dihapus"})
}
