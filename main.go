package main

import "github.com/fintrack/finance-tracker/cmd"

func main() {
	cmd.Execute()
}
