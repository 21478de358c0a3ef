package api

import (
	"regexp"
	"strings"

	"github.com/LachyC123/bloodline-arena-sub000/internal/session"
	"github.com/LachyC123/bloodline-arena-sub000/internal/storage"
)

// FightHandler groups all fight-related HTTP handlers.
type FightHandler struct {
	mgr  *session.Manager
	repo storage.Repository
}

func NewFightHandler(mgr *session.Manager, repo storage.Repository) *FightHandler {
	return &FightHandler{mgr: mgr, repo: repo}
}

var fightCodeRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

func normalizeFightCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
