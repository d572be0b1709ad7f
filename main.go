package main

import "github.com/rpgo/resilience-navigator/cmd"

func main() {
	cmd.Execute()
}
