package main

import "github.com/forPelevin/smartcut/internal/cli"

func main() {
	cli.Main()
}
