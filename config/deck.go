package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckCard is one requested card and how many copies the deck needs.
type DeckCard struct {
	Name     string
	Quantity int
}

// DeckCategory groups deck cards ("Monsters", "Spells", "Traps").
type DeckCategory struct {
	Name  string
	Cards []DeckCard
}

// Deck is a requested card list to price, in document order.
type Deck struct {
	DeckName    string
	Format      string
	Description string
	Categories  []DeckCategory
}

// TotalCards returns the total number of copies the deck needs.
func (d *Deck) TotalCards() int {
	total := 0
	for _, category := range d.Categories {
		for _, card := range category.Cards {
			total += card.Quantity
		}
	}
	return total
}

// UnmarshalYAML decodes a deck document, walking the nested category
// and card mappings to preserve their order.
func (d *Deck) UnmarshalYAML(node *yaml.Node) error {
	var doc struct {
		DeckName    string    `yaml:"deck_name"`
		Format      string    `yaml:"format"`
		Description string    `yaml:"description"`
		Cards       yaml.Node `yaml:"cards"`
	}
	if err := node.Decode(&doc); err != nil {
		return err
	}

	d.DeckName = doc.DeckName
	d.Format = doc.Format
	d.Description = doc.Description
	d.Categories = nil

	if doc.Cards.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Cards.Content); i += 2 {
		categoryNode := doc.Cards.Content[i]
		cardsNode := doc.Cards.Content[i+1]

		category := DeckCategory{Name: categoryNode.Value}
		if cardsNode.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(cardsNode.Content); j += 2 {
				var quantity int
				if err := cardsNode.Content[j+1].Decode(&quantity); err != nil {
					return fmt.Errorf("card %q: %w", cardsNode.Content[j].Value, err)
				}
				category.Cards = append(category.Cards, DeckCard{
					Name:     cardsNode.Content[j].Value,
					Quantity: quantity,
				})
			}
		}
		d.Categories = append(d.Categories, category)
	}
	return nil
}

// Validate checks that the deck names at least one card with a positive
// quantity.
func (d *Deck) Validate() error {
	if len(d.Categories) == 0 {
		return fmt.Errorf("deck %q has no cards", d.DeckName)
	}
	for _, category := range d.Categories {
		for _, card := range category.Cards {
			if card.Quantity <= 0 {
				return fmt.Errorf("deck %q: card %q has non-positive quantity %d",
					d.DeckName, card.Name, card.Quantity)
			}
		}
	}
	return nil
}

// LoadDeck reads and validates a deck YAML file.
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}

	var deck Deck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("parse deck %s: %w", path, err)
	}
	if err := deck.Validate(); err != nil {
		return nil, err
	}
	return &deck, nil
}
