package handlers

import (
	"log"
	"net/http"
	"strconv"

	intconfig "armada/internal/config"

	"github.com/gin-gonic/gin"
)

type Bus struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	PlateNumber  string `json:"plateNumber"`
	OperatorID   int64  `json:"operatorId"`
	OperatorName string `json:"operatorName"`
	RouteID      int64  `json:"routeId"`
	Capacity     int    `json:"capacity"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

// GET /api/buses
func GetBuses(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT
			b.id,
			COALESCE(b.code, ''),
			COALESCE(b.plate_number, ''),
			COALESCE(b.operator_id, 0),
			COALESCE(o.name, ''),
			COALESCE(b.route_id, 0),
			COALESCE(b.capacity, 0),
			COALESCE(b.status, ''),
			COALESCE(DATE_FORMAT(b.created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM buses b
		LEFT JOIN operators o ON o.id = b.operator_id
		ORDER BY b.id DESC
	`)
	if err != nil {
		log.Println("GetBuses query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data bus: " + err.Error()})
		return
	}
	defer rows.Close()

	buses := []Bus{}
	for rows.Next() {
		var b Bus
		if err := rows.Scan(
			&b.ID,
			&b.Code,
			&b.PlateNumber,
			&b.OperatorID,
			&b.OperatorName,
			&b.RouteID,
			&b.Capacity,
			&b.Status,
			&b.CreatedAt,
		); err != nil {
			log.Println("GetBuses scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data bus: " + err.Error()})
			return
		}
		buses = append(buses, b)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data bus: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, buses)
}

// POST /api/buses
func CreateBus(c *gin.Context) {
	var input Bus
	if !BindJSONOrError(c, &input) {
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO buses (code, plate_number, operator_id, route_id, capacity, status, created_at)
		VALUES (?, ?, NULLIF(?,0), NULLIF(?,0), ?, ?, NOW())
	`,
		input.Code,
		input.PlateNumber,
		input.OperatorID,
		input.RouteID,
		input.Capacity,
		input.Status,
	)
	if err != nil {
		log.Println("CreateBus insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat bus baru: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

// PUT /api/buses/:id
func UpdateBus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var input Bus
	if !BindJSONOrError(c, &input) {
		return
	}

	if _, err = intconfig.DB.Exec(`
		UPDATE buses
		SET code=?, plate_number=?, operator_id=NULLIF(?,0), route_id=NULLIF(?,0), capacity=?, status=?
		WHERE id=?
	`,
		input.Code,
		input.PlateNumber,
		input.OperatorID,
		input.RouteID,
		input.Capacity,
		input.Status,
		id,
	); err != nil {
		log.Println("UpdateBus update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengupdate bus: " + err.Error()})
		return
	}

	input.ID = id
	c.JSON(http.StatusOK, input)
}

// DELETE /api/buses/:id
func DeleteBus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM buses WHERE id = ?`, id)
	if err != nil {
		log.Println("DeleteBus delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus bus: " + err.Error()})
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "bus tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus berhasil dihapus"})
}
