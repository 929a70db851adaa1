package main

import "goplss/cmd"

func main() {
	cmd.Execute()
}
