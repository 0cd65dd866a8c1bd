package main

import "github.com/juststeveking/uptimed/cmd"

func main() {
	cmd.Execute()
}
