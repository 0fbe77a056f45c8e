package main

import "github.com/worktally/cmd"

func main() {
	cmd.Execute()
}
