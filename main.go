package main

import "github.com/inovacc/shelfr/cmd"

func main() {
	cmd.Execute()
}
