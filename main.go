package main

import "github.com/jamjar/jamjar-editor/cmd"

func main() {
	cmd.Execute()
}
