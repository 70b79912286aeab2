package main

import (
	"github.com/duelcode-game/duelcode/internal/cli"
)

func main() {
	cli.Execute()
}
