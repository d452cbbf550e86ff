package game

// Defaults applied when a SessionConfig leaves a field empty.
const (
	DefaultPlayerFaction  = "Azul"
	DefaultTerritoryCount = 5
)

// Termination reasons recorded on the turn context.
const (
	ReasonQuit             = "quit"
	ReasonMissionFulfilled = "mission fulfilled"
)
