package main

import (
	"log"

	"github.com/zainmh-10/CreateAILab/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("creatorailab failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("creatorailab stopped with error: %v", err)
	}
}
