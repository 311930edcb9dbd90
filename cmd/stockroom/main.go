package main

import (
	"github.com/buildtall-systems/stockroom/internal/cli"
)

func main() {
	cli.Execute()
}
