package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LachyC123/bloodline-arena-sub000/internal/constants"
	"github.com/LachyC123/bloodline-arena-sub000/internal/service"
)

// EndResolution is the client's resolution-complete callback: the animation
// pipeline for the submitted action has finished.
func (h *FightHandler) EndResolution(c *gin.Context) {
	code, ok := h.fightCode(c)
	if !ok {
		return
	}
	switch err := service.EndActionResolution(h.mgr, code); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Resolution ended"})
	case service.ErrFightNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFightNotFound})
	case service.ErrNoResolutionInProgress:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotResolving})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
	}
}

// ForceEndResolution is the manual emergency recovery used by debug panels.
func (h *FightHandler) ForceEndResolution(c *gin.Context) {
	code, ok := h.fightCode(c)
	if !ok {
		return
	}
	switch err := service.ForceEndResolution(h.mgr, code); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Resolution forced"})
	case service.ErrFightNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFightNotFound})
	case service.ErrNoResolutionInProgress:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotResolving})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
	}
}

// BeginEnemyTurn opens the enemy's turn and returns its resolved action for
// the client to animate.
func (h *FightHandler) BeginEnemyTurn(c *gin.Context) {
	code, ok := h.fightCode(c)
	if !ok {
		return
	}
	outcome, err := service.BeginEnemyTurn(h.mgr, code)
	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"outcome": outcome})
	case service.ErrFightNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFightNotFound})
	case service.ErrEnemyTurnNotOpen:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrEnemyTurnNotOpen})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
	}
}

// EndEnemyTurn closes the enemy's turn once its animation has played out.
func (h *FightHandler) EndEnemyTurn(c *gin.Context) {
	code, ok := h.fightCode(c)
	if !ok {
		return
	}
	switch err := service.EndEnemyTurn(h.mgr, code); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Enemy turn ended"})
	case service.ErrFightNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFightNotFound})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
	}
}
