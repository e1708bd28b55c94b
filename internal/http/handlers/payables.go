package handlers

import (
	"log"
	"net/http"
	"strconv"

	intconfig "armada/internal/config"

	"github.com/gin-gonic/gin"
)

type Payable struct {
	ID           int64  `json:"id"`
	OperatorID   int64  `json:"operatorId"`
	OperatorName string `json:"operatorName"`
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	DueDate      string `json:"dueDate"`
	Status       string `json:"status"`
	PaidAt       string `json:"paidAt"`
	CreatedAt    string `json:"createdAt"`
}

// GET /api/payables
func GetPayables(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT
			p.id,
			COALESCE(p.operator_id, 0),
			COALESCE(o.name, ''),
			COALESCE(p.description, ''),
			COALESCE(p.amount, 0),
			COALESCE(DATE_FORMAT(p.due_date, '%Y-%m-%d'), ''),
			COALESCE(p.status, ''),
			COALESCE(DATE_FORMAT(p.paid_at, '%Y-%m-%d %H:%i:%s'), ''),
			COALESCE(DATE_FORMAT(p.created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM payables p
		LEFT JOIN operators o ON o.id = p.operator_id
		ORDER BY p.due_date ASC, p.id ASC
	`)
	if err != nil {
		log.Println("GetPayables query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data hutang: " + err.Error()})
		return
	}
	defer rows.Close()

	payables := []Payable{}
	for rows.Next() {
		var p Payable
		if err := rows.Scan(
			&p.ID, &p.OperatorID, &p.OperatorName, &p.Description,
			&p.Amount, &p.DueDate, &p.Status, &p.PaidAt, &p.CreatedAt,
		); err != nil {
			log.Println("GetPayables scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data hutang: " + err.Error()})
			return
		}
		payables = append(payables, p)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data hutang: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, payables)
}

// POST /api/payables
func CreatePayable(c *gin.Context) {
	var input Payable
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deskripsi hutang wajib diisi"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO payables (operator_id, description, amount, due_date, status, created_at)
		VALUES (NULLIF(?,0), ?, ?, NULLIF(?,''), 'unpaid', NOW())
	`, input.OperatorID, input.Description, input.Amount, input.DueDate)
	if err != nil {
		log.Println("CreatePayable insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan data hutang: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	input.ID = id
	input.Status = "unpaid"
	c.JSON(http.StatusCreated, input)
}

// PUT /api/payables/:id
func UpdatePayable(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var input Payable
	if !BindJSONOrError(c, &input) {
		return
	}

	if _, err = intconfig.DB.Exec(`
		UPDATE payables
		SET operator_id=NULLIF(?,0), description=?, amount=?, due_date=NULLIF(?,'')
		WHERE id=?
	`, input.OperatorID, input.Description, input.Amount, input.DueDate, id); err != nil {
		log.Println("UpdatePayable update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengupdate data hutang: " + err.Error()})
		return
	}

	input.ID = id
	c.JSON(http.StatusOK, input)
}

// PUT /api/payables/:id/pay
func MarkPayablePaid(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE payables SET status='paid', paid_at=NOW() WHERE id=? AND status <> 'paid'
	`, id)
	if err != nil {
		log.Println("MarkPayablePaid update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal melunasi hutang: " + err.Error()})
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "hutang tidak ditemukan atau sudah lunas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hutang berhasil dilunasi"})
}

// DELETE /api/payables/:id
func DeletePayable(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM payables WHERE id = ?`, id)
	if err != nil {
		log.Println("DeletePayable delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus data hutang: " + err.Error()})
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "hutang tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hutang berhasil dihapus"})
}
