package main

import (
	"log"

	"gotwitcher/internal/pkg/app"
)

func main() {
	if err := app.New(); err != nil {
		log.Fatal(err)
	}
}
