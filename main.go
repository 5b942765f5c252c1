package main

import "sheet2ddl/cmd"

func main() {
	cmd.Execute()
}
