package main

import "github.com/wabdine85-debug/kundenkartei-fahrschule/cmd"

func main() {
	cmd.Execute()
}
