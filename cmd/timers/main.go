package main

import "github.com/HamzaEzziymy/timers/cmd/timers/commands"

func main() {
	commands.Execute()
}
