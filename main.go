package main

import "stash-recipes/cmd"

func main() {
	cmd.Execute()
}
