package game

import (
	"github.com/mitchelldurbincs/war/internal/game/core"
	"github.com/mitchelldurbincs/war/internal/game/dice"
	"github.com/rs/zerolog/log"
)

// GenerateRandomAction picks an attack for the player uniformly among the
// hostile attacks available, falling back to a mission check when there
// is none. This is a helper intended for demos and simple baseline play.
func GenerateRandomAction(s *Session, src dice.Source) core.Action {
	attacks := s.HostileAttacks()
	if len(attacks) == 0 {
		log.Debug().Str("session_id", s.ID()).Msg("No hostile attack available, checking mission")
		return &core.CheckMissionAction{}
	}

	chosen := attacks[src.Intn(len(attacks))]
	log.Debug().
		Str("session_id", s.ID()).
		Int("attacker", chosen.Attacker).
		Int("defender", chosen.Defender).
		Msg("Generated random action")
	return &chosen
}
