package main

import "github.com/atikulmunna/logdecode/internal/cmd"

func main() {
	cmd.Execute()
}
