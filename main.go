package main

import "slotpatch/cmd"

func main() {
	cmd.Execute()
}
