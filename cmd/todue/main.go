package main

import "todue/internal/cli"

func main() {
	cli.Execute()
}
