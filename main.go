package main

import "coursebuilder/cmd"

func main() {
	cmd.Execute()
}
