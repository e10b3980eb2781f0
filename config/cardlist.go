package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultWaitTime = 3

// CardEntry is one card to scrape together with its optional search
// filters.
type CardEntry struct {
	Name      string
	Set       string
	Condition string
	Edition   string
}

// CardList is one scrape job: a named list of cards in document order.
type CardList struct {
	Name     string
	WaitTime int
	Cards    []CardEntry
}

type cardEntryOptions struct {
	Set       string `yaml:"set"`
	Condition string `yaml:"condition"`
	Edition   string `yaml:"edition"`
}

// UnmarshalYAML decodes a card list document. Cards are a YAML mapping
// whose order must be preserved, so the mapping is walked node by node.
func (c *CardList) UnmarshalYAML(node *yaml.Node) error {
	var doc struct {
		Name     string    `yaml:"name"`
		WaitTime int       `yaml:"wait_time"`
		Cards    yaml.Node `yaml:"cards"`
	}
	if err := node.Decode(&doc); err != nil {
		return err
	}

	c.Name = doc.Name
	c.WaitTime = doc.WaitTime
	c.Cards = nil

	if doc.Cards.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Cards.Content); i += 2 {
		keyNode := doc.Cards.Content[i]
		valueNode := doc.Cards.Content[i+1]

		var opts cardEntryOptions
		if valueNode.Tag != "!!null" {
			if err := valueNode.Decode(&opts); err != nil {
				return fmt.Errorf("card %q: %w", keyNode.Value, err)
			}
		}
		c.Cards = append(c.Cards, CardEntry{
			Name:      keyNode.Value,
			Set:       opts.Set,
			Condition: opts.Condition,
			Edition:   opts.Edition,
		})
	}
	return nil
}

// Validate checks that the list has the fields a scrape run needs.
func (c *CardList) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("card list must have a 'name' field")
	}
	if len(c.Cards) == 0 {
		return fmt.Errorf("card list %q has no cards", c.Name)
	}
	return nil
}

// LoadCardList reads and validates a card list YAML file. A missing
// wait_time falls back to the default settle delay.
func LoadCardList(path string) (*CardList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card list %s: %w", path, err)
	}

	var list CardList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse card list %s: %w", path, err)
	}
	if list.WaitTime <= 0 {
		list.WaitTime = defaultWaitTime
	}
	if err := list.Validate(); err != nil {
		return nil, err
	}
	return &list, nil
}

// LoadCardListIndex reads the batch index file naming the card lists to
// process in order.
func LoadCardListIndex(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read list index %s: %w", path, err)
	}

	var index struct {
		List []string `yaml:"list"`
	}
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parse list index %s: %w", path, err)
	}
	return index.List, nil
}
