package main

import (
	"log"

	"github.com/tabibiq/matchengine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
