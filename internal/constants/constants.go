package constants

// Centralized constants for env keys, routes and user-facing messages.
const (
	// Environment variable keys
	EnvConfigPath = "ARENA_CONFIG"
	EnvDBPath     = "ARENA_DB"

	// Header carrying the browser client's stable identity. Used to
	// deduplicate fight creation when the same client retries.
	HeaderClientKey = "X-Client-Key"
)

// Routes used by the backend router
const (
	RouteAPIPrefix           = "/api"
	RouteFights              = "/fights"
	RouteFightByCode         = "/fights/:fightCode"
	RouteFightAction         = "/fights/:fightCode/action"
	RouteFightResolutionEnd  = "/fights/:fightCode/resolution/end"
	RouteFightForceEnd       = "/fights/:fightCode/resolution/force-end"
	RouteFightEnemyTurnBegin = "/fights/:fightCode/enemy-turn/begin"
	RouteFightEnemyTurnEnd   = "/fights/:fightCode/enemy-turn/end"
	RouteFightEnd            = "/fights/:fightCode/end"
	RouteFightCanAct         = "/fights/:fightCode/can-act"
	RouteFightDebug          = "/fights/:fightCode/debug"
	RouteFightEvents         = "/fights/:fightCode/events"
	RouteHistory             = "/history"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrInvalidFightCode    = "Invalid fight code"
	ErrFightNotFound       = "Fight not found"
	ErrClientKeyRequired   = "Client key is required"
	ErrFailedCreateFight   = "Failed to create fight"
	ErrFailedEndFight      = "Failed to end fight"
	ErrFailedFetchHistory  = "Failed to fetch fight history"
	ErrNotResolving        = "No resolution in progress"
	ErrEnemyTurnNotOpen    = "Enemy turn is not open"
	ErrFailedUpgradeSocket = "Failed to upgrade connection"
)

// Logging field names
const (
	LogFieldFightCode = "fight_code"
	LogFieldClientKey = "client_key"
	LogFieldPhase     = "phase"
	LogFieldTurn      = "turn"
	LogFieldWinner    = "winner"
	LogFieldAddr      = "addr"
	LogFieldElapsedMS = "elapsed_ms"
)
