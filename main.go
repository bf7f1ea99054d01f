package main

import "github.com/alexiusacademia/rcsched/cmd"

func main() {
	cmd.Execute()
}
