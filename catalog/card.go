package catalog

import (
	"fmt"
	"strings"
)

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// Card renders the formatted text card shown to users when browsing animals.
func Card(animal *Animal) string {
	species := animal.Species
	if species == "" {
		species = "Cão/Gato"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🐾 *%s* 🐾\n\n", animal.Name)
	b.WriteString("*Informações Básicas:*\n")
	fmt.Fprintf(&b, "• Tipo: %s\n", species)
	fmt.Fprintf(&b, "• Raça: %s\n", animal.Breed)
	fmt.Fprintf(&b, "• Idade: %d anos\n", animal.AgeYears)
	fmt.Fprintf(&b, "• Gênero: %s\n", animal.Gender)
	fmt.Fprintf(&b, "• Porte: %s\n\n", animal.Size)

	b.WriteString("*Saúde:*\n")
	fmt.Fprintf(&b, "• Vacinado: %s\n", yesNo(animal.Health.Vaccinated))
	fmt.Fprintf(&b, "• Vermifugado: %s\n", yesNo(animal.Health.Dewormed))
	fmt.Fprintf(&b, "• Castrado: %s\n", yesNo(animal.Health.Castrated))
	fmt.Fprintf(&b, "• Necessidades especiais: %s\n", yesNo(animal.Health.SpecialNeeds))
	fmt.Fprintf(&b, "• Observações: %s\n\n", animal.Health.Notes)

	b.WriteString("*Comportamento:*\n")
	fmt.Fprintf(&b, "• Temperamento: %s\n", animal.Behavior.Temperament)
	fmt.Fprintf(&b, "• Nível de energia: %s\n", animal.Behavior.EnergyLevel)
	fmt.Fprintf(&b, "• Bom com crianças: %s\n", yesNo(animal.Behavior.GoodWithKids))
	fmt.Fprintf(&b, "• Observações: %s\n\n", animal.Behavior.Notes)

	fmt.Fprintf(&b, "*História:*\n%s\n\n", animal.History)
	fmt.Fprintf(&b, "*Status de Adoção:*\n%s\n", animal.Status)

	return b.String()
}
