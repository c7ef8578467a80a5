package main

import "logistics/cmd"

func main() {
	cmd.Execute()
}
