package main

import "github.com/rnwolfe/siptrackr/cmd"

func main() {
	cmd.Execute()
}
