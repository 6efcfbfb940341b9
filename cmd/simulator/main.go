package main

import "github.com/kendall-kelly/table-orders-api/cmd/simulator/commands"

func main() {
	commands.Execute()
}
