package main

import (
	"log"

	"github.com/Ishaq7892/trafficsense/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
