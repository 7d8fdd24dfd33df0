package main

import (
	"slicedss/cmd"
)

func main() {
	cmd.Execute()
}
