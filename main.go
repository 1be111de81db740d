package main

import "mozartcheck/cmd"

func main() {
	cmd.Execute()
}
