package main

import "github.com/wulouis/transrate/cmd/transrate/cmd"

func main() {
	cmd.Run()
}
