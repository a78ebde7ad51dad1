package main

import "github.com/ByLCY/dotqr/cli"

func main() {
	cli.Execute()
}
