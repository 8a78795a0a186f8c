package main

import "github.com/OpenTraceLab/OpenTraceEnigma/cmd/enigma/cmd"

func main() {
	cmd.Execute()
}
