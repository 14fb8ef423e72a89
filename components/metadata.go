package components

import "fmt"

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID    string // Unique identifier
	Label string // Display name
	Group string // Logical grouping
}

// OrganismFieldDescriptors returns the inspector rows for an organism.
// Predator-only rows are in the "predator" group.
func OrganismFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "kind", Label: "Kind", Group: "core"},
		{ID: "id", Label: "ID", Group: "core"},
		{ID: "position", Label: "Cell", Group: "core"},
		{ID: "age", Label: "Age", Group: "core"},
		{ID: "breed", Label: "Breed", Group: "counters"},
		{ID: "starve", Label: "Starve", Group: "predator"},
	}
}

// FieldValue formats one descriptor's value. hunger may be nil for prey.
func FieldValue(id string, pos Position, org *Organism, hunger *Hunger, tick int32) string {
	switch id {
	case "kind":
		return org.Kind.String()
	case "id":
		return fmt.Sprintf("%d", org.ID)
	case "position":
		return fmt.Sprintf("%d,%d", pos.Row, pos.Col)
	case "age":
		return fmt.Sprintf("%d", tick-org.BirthTick)
	case "breed":
		return fmt.Sprintf("%d", org.BreedCounter)
	case "starve":
		if hunger == nil {
			return "-"
		}
		return fmt.Sprintf("%d", hunger.StarveCounter)
	}
	return ""
}
