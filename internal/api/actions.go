package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LachyC123/bloodline-arena-sub000/internal/combat"
	"github.com/LachyC123/bloodline-arena-sub000/internal/constants"
	"github.com/LachyC123/bloodline-arena-sub000/internal/service"
)

type ActionRequest struct {
	Action     string `json:"action"`
	TargetZone string `json:"target_zone"`
}

// SubmitAction submits a player combat action. A rejected action is a normal
// 200 response carrying {success:false, reason}; only infrastructure
// failures map to error statuses.
func (h *FightHandler) SubmitAction(c *gin.Context) {
	code, ok := h.fightCode(c)
	if !ok {
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	res, outcome, err := service.SubmitAction(h.mgr, code,
		combat.ActionType(req.Action), combat.Zone(req.TargetZone))
	if err != nil {
		if err == service.ErrFightNotFound {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFightNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": res.Success,
		"reason":  res.Reason,
		"outcome": outcome,
	})
}
