package main

import (
	"github.com/mmgame/mastermind-go/internal/cli"
)

func main() {
	cli.Execute()
}
