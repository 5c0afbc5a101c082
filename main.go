package main

import "github.com/khanhnv2901/urlscore/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
