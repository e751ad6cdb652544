package main

import (
	"os"

	"pressroom/service"
)

var version = "dev"

func main() {
	os.Exit(service.Execute(version))
}
