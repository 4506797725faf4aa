package main

import "github.com/sambabib/version-autopsy/cmd"

func main() {
	cmd.Execute()
}
