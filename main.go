package main

import "github.com/theirongolddev/zenfin/cmd"

func main() {
	cmd.Execute()
}
