package main

import "github.com/aapctl/aapctl/internal/cli"

func main() {
	cli.Execute()
}
