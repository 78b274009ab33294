package main

import "github.com/user/secreport/cmd"

func main() {
	cmd.Execute()
}
