package main

import "github.com/shortforge/hookcut/internal/cli"

func main() {
	cli.Main()
}
