package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generates sample CSV files for exercising the importer.
// File 1: a fully populated list with every field present.
// File 2: a sparse list relying on the importer's defaults.
func main() {
	dataDir := "data/samples"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	samples := map[string]string{
		"pantry_full.csv": "Pantry Restock\n" +
			"Olive Oil,Cooking,https://example.com/oil.jpg,extra virgin\n" +
			"Basmati Rice,Grains,https://example.com/rice.jpg,5kg bag\n" +
			"Canned Tomatoes,Cooking,,crushed\n" +
			"Black Pepper,Spices,,whole peppercorns\n",
		"snacks_sparse.csv": "Snacks\n" +
			"Chips,Food,,salty\n" +
			"Soda,Drinks,,\n" +
			",,,\n",
	}

	for filename, content := range samples {
		filePath := filepath.Join(dataDir, filename)

		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s\n", filePath)
	}

	fmt.Println("\nSample CSV files created successfully!")
	fmt.Println("Import one with:")
	fmt.Println("  curl -X POST --data-binary @data/samples/pantry_full.csv http://localhost:8080/api/import/csv")
}
