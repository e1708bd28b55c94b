package handlers

import (
	"log"
	"net/http"
	"strconv"

	intconfig "armada/internal/config"

	"github.com/gin-gonic/gin"
)

type SparePart struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PartNumber string `json:"partNumber"`
	Stock      int    `json:"stock"`
	MinStock   int    `json:"minStock"`
	UnitPrice  string `json:"unitPrice"`
	CreatedAt  string `json:"createdAt"`
}

// GET /api/spare-parts
func GetSpareParts(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT
			id,
			COALESCE(name, ''),
			COALESCE(part_number, ''),
			COALESCE(stock, 0),
			COALESCE(min_stock, 0),
			COALESCE(unit_price, 0),
			COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM spare_parts
		ORDER BY name ASC
	`)
	if err != nil {
		log.Println("GetSpareParts query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data sparepart: " + err.Error()})
		return
	}
	defer rows.Close()

	parts := []SparePart{}
	for rows.Next() {
		var p SparePart
		if err := rows.Scan(&p.ID, &p.Name, &p.PartNumber, &p.Stock, &p.MinStock, &p.UnitPrice, &p.CreatedAt); err != nil {
			log.Println("GetSpareParts scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data sparepart: " + err.Error()})
			return
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data sparepart: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, parts)
}

// POST /api/spare-parts
func CreateSparePart(c *gin.Context) {
	var input SparePart
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nama sparepart wajib diisi"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO spare_parts (name, part_number, stock, min_stock, unit_price, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`, input.Name, input.PartNumber, input.Stock, input.MinStock, input.UnitPrice)
	if err != nil {
		log.Println("CreateSparePart insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan sparepart: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

// PUT /api/spare-parts/:id
func UpdateSparePart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var input SparePart
	if !BindJSONOrError(c, &input) {
		return
	}

	if _, err = intconfig.DB.Exec(`
		UPDATE spare_parts SET name=?, part_number=?, stock=?, min_stock=?, unit_price=? WHERE id=?
	`, input.Name, input.PartNumber, input.Stock, input.MinStock, input.UnitPrice, id); err != nil {
		log.Println("UpdateSparePart update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengupdate sparepart: " + err.Error()})
		return
	}

	input.ID = id
	c.JSON(http.StatusOK, input)
}

// PUT /api/spare-parts/:id/adjust-stock
func AdjustSparePartStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var input struct {
		Delta int `json:"delta" binding:"required"`
	}
	if !BindJSONOrError(c, &input) {
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE spare_parts SET stock = stock + ? WHERE id = ? AND stock + ? >= 0
	`, input.Delta, id, input.Delta)
	if err != nil {
		log.Println("AdjustSparePartStock update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengubah stok sparepart: " + err.Error()})
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "stok tidak mencukupi atau sparepart tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stok sparepart berhasil diubah"})
}

// DELETE /api/spare-parts/:id
func DeleteSparePart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM spare_parts WHERE id = ?`, id)
	if err != nil {
		log.Println("DeleteSparePart delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus sparepart: " + err.Error()})
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "sparepart tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sparepart berhasil dihapus"})
}
