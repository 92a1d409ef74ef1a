package main

import (
	"github.com/mcoot/turnherald/internal/cli"
)

func main() {
	cli.Execute()
}
