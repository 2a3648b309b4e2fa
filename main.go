package main

import "clipbot/cmd"

func main() {
	cmd.Execute()
}
