package main

import "github.com/dmoraisb/maitred/cmd/maitred/cmd"

func main() {
	cmd.Execute()
}
