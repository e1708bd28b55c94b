package handlers

import (
	"log"
	"net/http"
	"strconv"

	intconfig "armada/internal/config"

	"github.com/gin-gonic/gin"
)

type Operator struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedAt string `json:"createdAt"`
}

// GET /api/operators
func GetOperators(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT
			id,
			COALESCE(name, ''),
			COALESCE(phone, ''),
			COALESCE(address, ''),
			COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM operators
		ORDER BY name ASC
	`)
	if err != nil {
		log.Println("GetOperators query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data pengusaha: " + err.Error()})
		return
	}
	defer rows.Close()

	operators := []Operator{}
	for rows.Next() {
		var o Operator
		if err := rows.Scan(&o.ID, &o.Name, &o.Phone, &o.Address, &o.CreatedAt); err != nil {
			log.Println("GetOperators scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data pengusaha: " + err.Error()})
			return
		}
		operators = append(operators, o)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data pengusaha: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, operators)
}

// POST /api/operators
func CreateOperator(c *gin.Context) {
	var input Operator
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nama pengusaha wajib diisi"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO operators (name, phone, address, created_at)
		VALUES (?, ?, ?, NOW())
	`, input.Name, input.Phone, input.Address)
	if err != nil {
		log.Println("CreateOperator insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat data pengusaha: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

// PUT /api/operators/:id
func UpdateOperator(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var input Operator
	if !BindJSONOrError(c, &input) {
		return
	}

	if _, err = intconfig.DB.Exec(`
		UPDATE operators SET name=?, phone=?, address=? WHERE id=?
	`, input.Name, input.Phone, input.Address, id); err != nil {
		log.Println("UpdateOperator update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengupdate data pengusaha: " + err.Error()})
		return
	}

	input.ID = id
	c.JSON(http.StatusOK, input)
}

// DELETE /api/operators/:id
func DeleteOperator(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM operators WHERE id = ?`, id)
	if err != nil {
		log.Println("DeleteOperator delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus data pengusaha: " + err.Error()})
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "pengusaha tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pengusaha berhasil dihapus"})
}
