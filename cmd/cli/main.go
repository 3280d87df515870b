package main

import "bibliobot/cmd/cli/command"

func main() {
	command.Execute()
}
