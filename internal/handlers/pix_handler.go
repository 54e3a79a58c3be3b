package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/crewapp/crew-scheduler/internal/audit"
	"github.com/crewapp/crew-scheduler/internal/httperr"
	"github.com/crewapp/crew-scheduler/internal/middleware"
	"github.com/crewapp/crew-scheduler/internal/models"
	"github.com/crewapp/crew-scheduler/internal/validators"
)

type PixHandler struct {
	db      *gorm.DB
	audit   *audit.Dispatcher
	mpToken string
}

func NewPixHandler(db *gorm.DB, dispatcher *audit.Dispatcher, mpToken string) *PixHandler {
	return &PixHandler{db: db, audit: dispatcher, mpToken: mpToken}
}

type CreatePixKeyRequest struct {
	Key string `json:"pix_key" binding:"required"`
}

type PixChargeRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
}

// ============================
// LISTAR CHAVES
// ============================
func (h *PixHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var keys []models.PixKey
	if err := h.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&keys).Error; err != nil {
		httperr.Internal(c, "pix_list_failed", "Erro ao listar chaves Pix.")
		return
	}

	c.JSON(http.StatusOK, keys)
}

// ============================
// CADASTRAR CHAVE
// ============================
func (h *PixHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreatePixKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Dados inválidos.")
		return
	}

	keyType, ok := validators.DetectPixKeyType(req.Key)
	if !ok {
		httperr.BadRequest(c, "invalid_pix_key", "Chave Pix inválida.")
		return
	}

	var count int64
	h.db.Model(&models.PixKey{}).
		Where("user_id = ? AND key = ?", userID, req.Key).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "pix_key_already_exists", "Chave Pix já cadastrada.")
		return
	}

	pixKey := models.PixKey{
		UserID:  userID,
		Key:     req.Key,
		KeyType: keyType,
	}

	if err := h.db.Create(&pixKey).Error; err != nil {
		httperr.Internal(c, "pix_create_failed", "Erro ao cadastrar chave Pix.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "pix_key_created",
		Entity:   "pix_key",
		EntityID: &pixKey.ID,
		Metadata: map[string]any{"key_type": keyType},
	})

	c.JSON(http.StatusCreated, pixKey)
}

// ============================
// REMOVER CHAVE
// ============================
func (h *PixHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var pixKey models.PixKey
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&pixKey).Error; err != nil {
		httperr.NotFound(c, "pix_key_not_found", "Chave Pix não encontrada.")
		return
	}

	if err := h.db.Delete(&pixKey).Error; err != nil {
		httperr.Internal(c, "pix_delete_failed", "Erro ao remover chave Pix.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "pix_key_deleted",
		Entity:   "pix_key",
		EntityID: &pixKey.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Chave Pix removida com sucesso."})
}

// ============================
// COBRANÇA PIX
// ============================
func (h *PixHandler) Charge(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if h.mpToken == "" {
		httperr.Unavailable(c, "pix_charges_disabled", "Cobranças Pix desabilitadas.")
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req PixChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Valor da cobrança inválido.")
		return
	}

	var pixKey models.PixKey
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&pixKey).Error; err != nil {
		httperr.NotFound(c, "pix_key_not_found", "Chave Pix não encontrada.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	mpCfg, err := mpconfig.New(h.mpToken)
	if err != nil {
		httperr.Internal(c, "pix_gateway_failed", "Erro ao conectar com o gateway de pagamento.")
		return
	}

	res, err := payment.NewClient(mpCfg).Create(c.Request.Context(), payment.Request{
		TransactionAmount: req.Amount,
		PaymentMethodID:   "pix",
		Description:       req.Description,
		Payer: &payment.PayerRequest{
			Email: user.Email,
		},
	})
	if err != nil {
		httperr.Internal(c, "pix_charge_failed", "Erro ao criar cobrança Pix.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "pix_charge_created",
		Entity:   "pix_key",
		EntityID: &pixKey.ID,
		Metadata: map[string]any{"amount": req.Amount, "payment_id": res.ID},
	})

	c.JSON(http.StatusCreated, gin.H{
		"payment_id": res.ID,
		"status":     res.Status,
		"qr_code":    res.PointOfInteraction.TransactionData.QRCode,
	})
}
