package core

// CanonicalSeed is the default five-territory map used when no seed list
// is configured.
func CanonicalSeed() []Territory {
	return []Territory{
		{Name: "América", Owner: "Verde", Troops: 5},
		{Name: "Europa", Owner: "Azul", Troops: 3},
		{Name: "Ásia", Owner: "Vermelho", Troops: 4},
		{Name: "África", Owner: "Amarelo", Troops: 2},
		{Name: "Oceania", Owner: "Verde", Troops: 1},
	}
}
