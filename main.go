package main

import "github.com/yhkl-dev/soniferous/cmd"

func main() {
	cmd.Execute()
}
