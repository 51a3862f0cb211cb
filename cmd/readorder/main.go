package main

import "github.com/MeKo-Tech/readorder/cmd/readorder/cmd"

func main() {
	cmd.Execute()
}
