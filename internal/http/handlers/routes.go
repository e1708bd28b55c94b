package handlers

import (
	"log"
	"net/http"
	"strconv"

	intconfig "armada/internal/config"

	"github.com/gin-gonic/gin"
)

type Route struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DistanceKM  int    `json:"distanceKm"`
	CreatedAt   string `json:"createdAt"`
}

// GET /api/routes
func GetRoutes(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT
			id,
			COALESCE(name, ''),
			COALESCE(origin, ''),
			COALESCE(destination, ''),
			COALESCE(distance_km, 0),
			COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM routes
		ORDER BY name ASC
	`)
	if err != nil {
		log.Println("GetRoutes query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data trayek: " + err.Error()})
		return
	}
	defer rows.Close()

	routes := []Route{}
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.Name, &r.Origin, &r.Destination, &r.DistanceKM, &r.CreatedAt); err != nil {
			log.Println("GetRoutes scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data trayek: " + err.Error()})
			return
		}
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data trayek: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, routes)
}

// POST /api/routes
func CreateRoute(c *gin.Context) {
	var input Route
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nama trayek wajib diisi"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO routes (name, origin, destination, distance_km, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`, input.Name, input.Origin, input.Destination, input.DistanceKM)
	if err != nil {
		log.Println("CreateRoute insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat trayek: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

// PUT /api/routes/:id
func UpdateRoute(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var input Route
	if !BindJSONOrError(c, &input) {
		return
	}

	if _, err = intconfig.DB.Exec(`
		UPDATE routes SET name=?, origin=?, destination=?, distance_km=? WHERE id=?
	`, input.Name, input.Origin, input.Destination, input.DistanceKM, id); err != nil {
		log.Println("UpdateRoute update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengupdate trayek: " + err.Error()})
		return
	}

	input.ID = id
	c.JSON(http.StatusOK, input)
}

// DELETE /api/routes/:id
func DeleteRoute(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		log.Println("DeleteRoute delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus trayek: " + err.Error()})
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "trayek tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trayek berhasil dihapus"})
}
