package main

import (
	"context"

	"cardmarket-scraper/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
