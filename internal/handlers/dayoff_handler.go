package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
	"github.com/crewapp/crew-scheduler/internal/httperr"
	"github.com/crewapp/crew-scheduler/internal/middleware"
	ucDayoff "github.com/crewapp/crew-scheduler/internal/usecase/dayoff"
)

// ======================================================
// HANDLER
// ======================================================

type DayOffHandler struct {
	createUC *ucDayoff.CreateDayOff
	listUC   *ucDayoff.ListDayOffs
	updateUC *ucDayoff.UpdateDayOff
	deleteUC *ucDayoff.DeleteDayOff
}

func NewDayOffHandler(
	createUC *ucDayoff.CreateDayOff,
	listUC *ucDayoff.ListDayOffs,
	updateUC *ucDayoff.UpdateDayOff,
	deleteUC *ucDayoff.DeleteDayOff,
) *DayOffHandler {
	return &DayOffHandler{
		createUC: createUC,
		listUC:   listUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type DayOffRequest struct {
	InitHour    time.Time `json:"init_hour" binding:"required"`
	EndHour     time.Time `json:"end_hour" binding:"required"`
	Repeat      bool      `json:"repeat"`
	RepeatType  string    `json:"repeat_type"`
	RepeatValue string    `json:"repeat_value"`
}

// ======================================================
// LIST
// ======================================================

func (h *DayOffHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if c.Query("filter_type") != "month" {
		items, err := h.listUC.ExecuteAll(c.Request.Context(), userID)
		if err != nil {
			httperr.Internal(c, "failed_to_list_dayoffs", "Erro ao listar day offs.")
			return
		}
		c.JSON(200, items)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	items, err := h.listUC.ExecuteMonth(c.Request.Context(), userID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_dayoffs", "Erro ao listar day offs.")
		return
	}

	c.JSON(200, items)
}

// ======================================================
// CREATE
// ======================================================

func (h *DayOffHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req DayOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucDayoff.CreateDayOffInput{
		UserID:      userID,
		InitHour:    req.InitHour,
		EndHour:     req.EndHour,
		Repeat:      req.Repeat,
		RepeatType:  req.RepeatType,
		RepeatValue: req.RepeatValue,
	})
	if err != nil {
		writeDayOffError(c, err)
		return
	}

	c.JSON(201, created)
}

// ======================================================
// UPDATE (scope via ?mode=)
// ======================================================

func (h *DayOffHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	scope, err := domain.ParseScope(c.Query("mode"))
	if err != nil {
		httperr.BadRequest(c, "invalid_scope", "Modo inválido.")
		return
	}

	var req DayOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	updated, err := h.updateUC.Execute(c.Request.Context(), userID, id, scope, ucDayoff.UpdateDayOffInput{
		InitHour: req.InitHour,
		EndHour:  req.EndHour,
	})
	if err != nil {
		writeDayOffError(c, err)
		return
	}

	c.JSON(200, updated)
}

// ======================================================
// DELETE (scope via ?mode=)
// ======================================================

func (h *DayOffHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	scope, err := domain.ParseScope(c.Query("mode"))
	if err != nil {
		httperr.BadRequest(c, "invalid_scope", "Modo inválido.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), userID, id, scope); err != nil {
		writeDayOffError(c, err)
		return
	}

	c.JSON(200, gin.H{"status": "ok"})
}

// ======================================================
// HELPERS
// ======================================================

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}

func writeDayOffError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "dayoff_not_found":
		httperr.NotFound(c, code, "Day off não encontrado.")
	case "":
		httperr.Internal(c, "dayoff_error", "Erro ao processar day off.")
	default:
		httperr.BadRequest(c, code, "Dados inválidos.")
	}
}
