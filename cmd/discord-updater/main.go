package main

import "github.com/oshokin/discord-updater/cmd/discord-updater/cmd"

func main() {
	cmd.Execute()
}
