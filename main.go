package main

import "github.com/strenlab/tensile/cmd"

func main() {
	cmd.Execute()
}
