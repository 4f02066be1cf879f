package main

import "thoreinstein.com/tend/cmd"

func main() {
	cmd.Execute()
}
