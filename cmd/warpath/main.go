package main

import "github.com/wichardvalente37/war-path-progress/cmd/warpath/root"

func main() {
	root.Execute()
}
