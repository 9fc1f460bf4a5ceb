package main

import "github.com/zhubert/jockey/cmd"

func main() {
	cmd.Execute()
}
