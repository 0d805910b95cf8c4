package main

import (
	"github.com/danmuck/mspctl/internal/cli"
)

func main() {
	cli.Execute()
}
