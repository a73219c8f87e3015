package main

import "github.com/jahua/prism-portfolio/cmd"

func main() {
	cmd.Execute()
}
