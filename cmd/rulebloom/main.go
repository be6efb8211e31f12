package main

import "github.com/silogen/rulebloom/cmd"

func main() {
	cmd.Execute()
}
