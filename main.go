package main

import "github.com/vidseek/vidseek/cmd"

func main() {
	cmd.Execute()
}
