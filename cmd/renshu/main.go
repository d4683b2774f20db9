package main

import "renshu/cmd/renshu/root"

func main() {
	root.Execute()
}
