package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LachyC123/bloodline-arena-sub000/internal/constants"
	"github.com/LachyC123/bloodline-arena-sub000/internal/session"
)

// CreateFight starts a new fight for the calling client. Creating again with
// the same client key abandons the previous fight first.
func (h *FightHandler) CreateFight(c *gin.Context) {
	clientKey := c.GetHeader(constants.HeaderClientKey)
	if clientKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrClientKeyRequired})
		return
	}

	f, err := h.mgr.CreateFight(clientKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateFight})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"fight_code": f.JoinCode,
		"phase":      f.Controller.GetPhase(),
		"state":      f.Snapshot(),
	})
}

// GetFight returns the current snapshot of a fight.
func (h *FightHandler) GetFight(c *gin.Context) {
	f, ok := h.lookupFight(c)
	if !ok {
		return
	}
	canAct, reason := f.Controller.CanPlayerAct()
	c.JSON(http.StatusOK, gin.H{
		"fight_code": f.JoinCode,
		"phase":      f.Controller.GetPhase(),
		"state":      f.Snapshot(),
		"can_act":    canAct,
		"reason":     reason,
		"rounds":     f.Rounds(),
	})
}

// EndFight tears the fight down when the client leaves the fight scene.
func (h *FightHandler) EndFight(c *gin.Context) {
	code, ok := h.fightCode(c)
	if !ok {
		return
	}
	if err := h.mgr.EndFight(code); err != nil {
		if err == session.ErrFightNotFound {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFightNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEndFight})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Fight ended"})
}

// CanAct reports whether an action submission would currently be accepted.
func (h *FightHandler) CanAct(c *gin.Context) {
	f, ok := h.lookupFight(c)
	if !ok {
		return
	}
	canAct, reason := f.Controller.CanPlayerAct()
	c.JSON(http.StatusOK, gin.H{"can_act": canAct, "reason": reason})
}

// GetDebugState serves the diagnostic snapshot used by debug overlays.
func (h *FightHandler) GetDebugState(c *gin.Context) {
	f, ok := h.lookupFight(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, f.Controller.GetDebugState())
}

// ListHistory returns recently concluded fights.
func (h *FightHandler) ListHistory(c *gin.Context) {
	recs, err := h.repo.ListRecentFights(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHistory})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *FightHandler) fightCode(c *gin.Context) (string, bool) {
	code := normalizeFightCode(c.Param("fightCode"))
	if code == "" || !fightCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidFightCode})
		return "", false
	}
	return code, true
}

func (h *FightHandler) lookupFight(c *gin.Context) (*session.Fight, bool) {
	code, ok := h.fightCode(c)
	if !ok {
		return nil, false
	}
	f, ok := h.mgr.GetFight(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFightNotFound})
		return nil, false
	}
	return f, true
}
