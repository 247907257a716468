// File: dineslot/main.go
package main

import "dineslot/cmd"

func main() {
	cmd.Execute()
}
