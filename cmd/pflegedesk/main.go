package main

import "github.com/pflegedesk/pflegedesk/internal/cli"

func main() {
	cli.Execute()
}
