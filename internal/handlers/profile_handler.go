package handlers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/chai2010/webp"
	"github.com/gin-gonic/gin"
	"golang.org/x/image/draw"
	"gorm.io/gorm"

	"github.com/crewapp/crew-scheduler/internal/httperr"
	"github.com/crewapp/crew-scheduler/internal/middleware"
	"github.com/crewapp/crew-scheduler/internal/models"
	"github.com/crewapp/crew-scheduler/internal/storage"
)

const (
	maxAvatarBytes = 5 << 20
	avatarMaxEdge  = 512
)

type ProfileHandler struct {
	db      *gorm.DB
	avatars *storage.AvatarStore
}

func NewProfileHandler(db *gorm.DB, avatars *storage.AvatarStore) *ProfileHandler {
	return &ProfileHandler{db: db, avatars: avatars}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"role":       user.Role,
			"avatar_url": user.AvatarURL,
		},
	})
}

// UploadAvatar accepts a multipart "avatar" image, normalizes it to a
// bounded WebP, and stores it in the bucket.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if !h.avatars.Enabled() {
		httperr.Unavailable(c, "avatar_storage_disabled", "Upload de avatar desabilitado.")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_avatar_file", "Arquivo de avatar obrigatório.")
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		httperr.BadRequest(c, "avatar_too_large", "Arquivo acima de 5MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "avatar_read_failed", "Erro ao ler arquivo.")
		return
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}

	encoded, err := encodeAvatar(src)
	if err != nil {
		httperr.Internal(c, "avatar_encode_failed", "Erro ao processar imagem.")
		return
	}

	key := fmt.Sprintf("avatars/%d.webp", userID)
	url, err := h.avatars.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "avatar_upload_failed", "Erro ao enviar imagem.")
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "avatar_save_failed", "Erro ao salvar avatar.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

func encodeAvatar(src image.Image) ([]byte, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > avatarMaxEdge || h > avatarMaxEdge {
		scale := float64(avatarMaxEdge) / float64(max(w, h))
		dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
