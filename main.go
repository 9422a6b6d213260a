package main

import "github.com/KaramelBytes/tidyrep/cmd"

func main() {
	cmd.Execute()
}
