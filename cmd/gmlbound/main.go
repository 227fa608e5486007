package main

import "github.com/beetlebugorg/gmlbound/internal/cli"

func main() {
	cli.Execute()
}
