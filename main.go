package main

import "github.com/ovenlight/toastctl/cmd"

func main() {
	cmd.Execute()
}
