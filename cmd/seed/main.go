package main

import (
	"context"
	"log"

	"github.com/iamblessed-asd/order-api/config"
	"github.com/iamblessed-asd/order-api/internal/models"
	"github.com/iamblessed-asd/order-api/internal/store"
)

// Seed creates the schema and loads a small working data set: two
// categories, three inventory items, one client with one open order.
// Orders are otherwise created out-of-band; the API only populates them.
func main() {
	cfg := config.Load()

	db, err := store.NewStore(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Tables created")

	electronics := &models.Category{Name: "Electronics"}
	if err := db.CreateCategory(ctx, electronics); err != nil {
		log.Fatalf("Failed to create category: %v", err)
	}
	household := &models.Category{Name: "Household", ParentID: &electronics.ID}
	if err := db.CreateCategory(ctx, household); err != nil {
		log.Fatalf("Failed to create category: %v", err)
	}

	items := []models.Nomenclature{
		{Name: "Item 1", Quantity: 100, Price: 20.5, CategoryID: electronics.ID},
		{Name: "Item 2", Quantity: 150, Price: 30.0, CategoryID: household.ID},
		{Name: "Item 3", Quantity: 50, Price: 10.0, CategoryID: electronics.ID},
	}
	for i := range items {
		if err := db.CreateNomenclature(ctx, &items[i]); err != nil {
			log.Fatalf("Failed to create nomenclature %q: %v", items[i].Name, err)
		}
	}

	client := &models.Client{Name: "Demo Client", Address: "123 Demo Street"}
	if err := db.CreateClient(ctx, client); err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	order := &models.Order{ClientID: client.ID}
	if err := db.CreateOrder(ctx, order); err != nil {
		log.Fatalf("Failed to create order: %v", err)
	}

	log.Printf("Seed data inserted: client=%d, order=%d, items=%d", client.ID, order.ID, len(items))
}
