package main

import "github.com/HannesFeil/multiway-powersort-experiments/cmd"

func main() {
	cmd.Execute()
}
