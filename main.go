package main

import "allowlist-sync/cmd"

func main() {
	cmd.Execute()
}
