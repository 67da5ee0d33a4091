package main

import "github.com/deploymenttheory/go-applefile/cmd"

func main() {
	cmd.Execute()
}
