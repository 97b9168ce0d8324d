package main

import "healthscore/cmd"

func main() {
	cmd.Execute()
}
