package main

import "github.com/sadopc/moodr/cmd"

func main() {
	cmd.Execute()
}
