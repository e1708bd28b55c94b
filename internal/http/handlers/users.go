package handlers

import (
	"log"
	"net/http"
	"strconv"

	intconfig "armada/internal/config"
	"armada/models"

	"github.com/gin-gonic/gin"
)

// GET /api/users (admin)
func GetUsers(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT
			id,
			COALESCE(name, ''),
			COALESCE(username, ''),
			COALESCE(email, ''),
			COALESCE(phone, ''),
			COALESCE(role, ''),
			COALESCE(status, ''),
			created_at,
			updated_at
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		log.Println("GetUsers query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data user: " + err.Error()})
		return
	}
	defer rows.Close()

	users := []models.PublicUser{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			log.Println("GetUsers scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data user: " + err.Error()})
			return
		}
		users = append(users, u.ToPublic())
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membaca data user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// PUT /api/users/:id/role (admin)
func UpdateUserRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.Role != "admin" && input.Role != "staff" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role tidak dikenal"})
		return
	}

	res, err := intconfig.DB.Exec(`UPDATE users SET role = ? WHERE id = ?`, input.Role, id)
	if err != nil {
		log.Println("UpdateUserRole update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengupdate role user: " + err.Error()})
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role user berhasil diupdate"})
}

// DELETE /api/users/:id (admin)
func DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		log.Println("DeleteUser delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus user: " + err.Error()})
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user berhasil dihapus"})
}
