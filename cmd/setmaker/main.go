package main

import "github.com/dbsmedya/setmaker/cmd/setmaker/cmd"

func main() {
	cmd.Execute()
}
