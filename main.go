package main

import "github.com/user/setlist-archive-cli/cmd"

func main() {
	cmd.Execute()
}
