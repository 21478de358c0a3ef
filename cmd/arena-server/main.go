package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/LachyC123/bloodline-arena-sub000/internal/api"
	"github.com/LachyC123/bloodline-arena-sub000/internal/constants"
	"github.com/LachyC123/bloodline-arena-sub000/internal/logging"
	"github.com/LachyC123/bloodline-arena-sub000/internal/notify"
	"github.com/LachyC123/bloodline-arena-sub000/internal/session"
)

func main() {
	cfg := loadConfigOrExit()

	dbPath := cfg.DBPath
	if override := os.Getenv(constants.EnvDBPath); override != "" {
		dbPath = override
	}
	repo := createRepositoryOrExit(dbPath)

	events := notify.NewBroadcaster()
	manager := session.NewManager(repo, events, cfg)
	handler := api.NewFightHandler(manager, repo)

	router := gin.Default()
	registerRoutes(router, handler)

	logging.Info("Starting arena server", logging.Fields{
		constants.LogFieldAddr: cfg.ServerAddress,
		"db_path":              dbPath,
	})
	if err := router.Run(cfg.ServerAddress); err != nil {
		logging.Fatal("Server exited", err, nil)
	}
}

func registerRoutes(router *gin.Engine, h *api.FightHandler) {
	apiGroup := router.Group(constants.RouteAPIPrefix)
	{
		apiGroup.POST(constants.RouteFights, h.CreateFight)
		apiGroup.GET(constants.RouteFightByCode, h.GetFight)
		apiGroup.POST(constants.RouteFightAction, h.SubmitAction)
		apiGroup.POST(constants.RouteFightResolutionEnd, h.EndResolution)
		apiGroup.POST(constants.RouteFightForceEnd, h.ForceEndResolution)
		apiGroup.POST(constants.RouteFightEnemyTurnBegin, h.BeginEnemyTurn)
		apiGroup.POST(constants.RouteFightEnemyTurnEnd, h.EndEnemyTurn)
		apiGroup.POST(constants.RouteFightEnd, h.EndFight)
		apiGroup.GET(constants.RouteFightCanAct, h.CanAct)
		apiGroup.GET(constants.RouteFightDebug, h.GetDebugState)
		apiGroup.GET(constants.RouteFightEvents, h.FightEvents)
		apiGroup.GET(constants.RouteHistory, h.ListHistory)
	}
}
