package main

import "github.com/mvp-joe/docfacts/internal/cli"

func main() {
	cli.Execute()
}
