package main

import "foodgram-service/internal/cli"

func main() {
	cli.Execute()
}
