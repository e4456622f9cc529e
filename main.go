package main

import (
	"log"

	"github.com/hr-partner/hrp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
