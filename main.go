package main

import "schedchat/cmd"

func main() {
	cmd.Execute()
}
