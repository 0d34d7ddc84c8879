package main

import "github.com/seatswap/ticketscan/cmd/ticketscan/cmd"

func main() {
	cmd.Execute()
}
