package console

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys are the English texts; the en locale renders them as is.
const (
	msgBanner            = "WAR - territory conquest"
	msgMapTitle          = "WORLD MAP - STATUS"
	msgTerritoryLine     = "%d. %s (Army: %s, Troops: %d)"
	msgFactionLine       = "%s: %d territories, %d troops"
	msgMissionTitle      = "YOUR MISSION (army %s)"
	msgMissionProgress   = "Progress: %d / %d"
	msgMissionRemaining  = "Territories left: %d"
	msgMissionDone       = "Mission accomplished!"
	msgMissionPending    = "You have not fulfilled your mission yet. Keep fighting!"
	msgMenuTitle         = "--- MAIN MENU ---"
	msgMenuAttack        = "1 - Attack"
	msgMenuCheck         = "2 - Check mission"
	msgMenuQuit          = "0 - Quit"
	msgMenuPrompt        = "Choose your action: "
	msgInvalidChoice     = "Invalid option, try again."
	msgAttackerPrompt    = "Choose the attacking territory (1 to %d): "
	msgDefenderPrompt    = "Choose the territory to attack (1 to %d): "
	msgNotANumber        = "Please type a number."
	msgBattleTitle       = "--- BATTLE RESULT ---"
	msgBattleDice        = "Attacker (%s) rolled %d, defender (%s) rolled %d."
	msgBattleAttackerWon = "VICTORY FOR THE ATTACK! The defender lost 1 troop."
	msgBattleDefenderWon = "VICTORY FOR THE DEFENSE! The attack was repelled."
	msgConquered         = "CONQUEST! %s now belongs to the %s army."
	msgErrOutOfRange     = "Invalid territory number."
	msgErrSame           = "A territory cannot attack itself."
	msgErrNoTroops       = "The attacking territory has no troops available."
	msgErrTerminated     = "The game is over."
	msgErrGeneric        = "Action refused: %v"
	msgVictory           = "CONGRATULATIONS! You fulfilled your mission in %d turns."
	msgQuit              = "Game ended after %d turns. See you next time!"
	msgRegisterIntro     = "Let's register the %d starting territories of our world."
	msgRegisterHeader    = " --- Registering territory %d --- "
	msgRegisterName      = "Territory name: "
	msgRegisterFaction   = "Army color (e.g. Black, Yellow): "
	msgRegisterTroops    = "Number of troops: "
	msgInvalidTroops     = "Troops must be a whole number of zero or more."
	msgAutoplay          = "Turn %d: automatic attack from %s on %s."

	msgMissionConquer   = "Conquer %d territories"
	msgMissionEliminate = "Eliminate the %s army"
)

var ptBR = map[string]string{
	msgBanner:            "WAR - conquista de territórios",
	msgMapTitle:          "MAPA DO MUNDO - ESTADO ATUAL",
	msgTerritoryLine:     "%d. %s (Exército: %s, Tropas: %d)",
	msgFactionLine:       "%s: %d territórios, %d tropas",
	msgMissionTitle:      "SUA MISSÃO (exército %s)",
	msgMissionProgress:   "Progresso: %d / %d",
	msgMissionRemaining:  "Territórios restantes: %d",
	msgMissionDone:       "Missão cumprida!",
	msgMissionPending:    "Você ainda não cumpriu sua missão. Continue a lutar!",
	msgMenuTitle:         "--- MENU PRINCIPAL ---",
	msgMenuAttack:        "1 - Atacar",
	msgMenuCheck:         "2 - Verificar missão",
	msgMenuQuit:          "0 - Sair",
	msgMenuPrompt:        "Escolha sua ação: ",
	msgInvalidChoice:     "Opção inválida, tente novamente.",
	msgAttackerPrompt:    "Escolha o território atacante (1 a %d): ",
	msgDefenderPrompt:    "Escolha o território defensor (1 a %d): ",
	msgNotANumber:        "Por favor, digite um número.",
	msgBattleTitle:       "--- RESULTADO DA BATALHA ---",
	msgBattleDice:        "O atacante (%s) rolou %d e o defensor (%s) rolou %d.",
	msgBattleAttackerWon: "VITÓRIA DO ATAQUE! O defensor perdeu 1 tropa.",
	msgBattleDefenderWon: "VITÓRIA DA DEFESA! O ataque foi repelido.",
	msgConquered:         "CONQUISTA! %s agora pertence ao exército %s.",
	msgErrOutOfRange:     "Número de território inválido.",
	msgErrSame:           "Um território não pode atacar a si mesmo.",
	msgErrNoTroops:       "O território atacante não tem tropas disponíveis.",
	msgErrTerminated:     "O jogo já terminou.",
	msgErrGeneric:        "Ação recusada: %v",
	msgVictory:           "PARABÉNS! Você cumpriu sua missão em %d turnos.",
	msgQuit:              "Jogo encerrado após %d turnos. Até a próxima!",
	msgRegisterIntro:     "Vamos cadastrar os %d territórios iniciais do nosso mundo.",
	msgRegisterHeader:    " --- Cadastrando território %d --- ",
	msgRegisterName:      "Nome do território: ",
	msgRegisterFaction:   "Cor do exército (ex: Preto, Amarelo): ",
	msgRegisterTroops:    "Número de tropas: ",
	msgInvalidTroops:     "O número de tropas deve ser um inteiro maior ou igual a zero.",
	msgAutoplay:          "Turno %d: ataque automático de %s contra %s.",

	msgMissionConquer:   "Conquistar %d territórios",
	msgMissionEliminate: "Eliminar o exército %s",
}

// DefaultLocale is used when the configured locale is not supported.
var DefaultLocale = language.BrazilianPortuguese

var supported = []language.Tag{language.BrazilianPortuguese, language.English}

var builder = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, value := range ptBR {
		_ = b.SetString(language.BrazilianPortuguese, key, value)
	}
	return b
}

// MatchLocale resolves a locale string such as "pt-BR", "pt" or "en_US"
// to one of the supported tags, defaulting to Brazilian Portuguese.
func MatchLocale(locale string) language.Tag {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultLocale
	}
	base, _ := tag.Base()
	for _, s := range supported {
		if sb, _ := s.Base(); sb == base {
			return s
		}
	}
	return DefaultLocale
}

// NewPrinter returns a printer for locale backed by the console catalog.
func NewPrinter(locale string) *message.Printer {
	return message.NewPrinter(MatchLocale(locale), message.Catalog(builder))
}
