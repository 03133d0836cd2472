package main

import (
	"log"
	"os"

	"github.com/grovetools/assetpipe/pkg/config"
)

func main() {
	data, err := config.Schema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	if err := os.MkdirAll("schema", 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	// Write to schema directory
	if err := os.WriteFile("schema/assetpipe.config.schema.json", data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated assetpipe schema at schema/assetpipe.config.schema.json")
}
