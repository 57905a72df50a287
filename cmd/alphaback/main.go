package main

import (
	"alphaback/internal/cli"
)

func main() {
	cli.Execute()
}
