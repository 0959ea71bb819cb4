package main

import (
	"github.com/dicehall/dicehall/internal/cli"
)

func main() {
	cli.Execute()
}
