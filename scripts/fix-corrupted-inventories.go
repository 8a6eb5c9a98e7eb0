package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/tower-defense/internal/engine/inventory"
	"github.com/KirkDiggler/tower-defense/internal/entities"
)

// storedInventory mirrors the value the inventory repository writes
type storedInventory struct {
	OwnerID  string                      `json:"owner_id"`
	Mode     string                      `json:"mode"`
	Snapshot *entities.InventorySnapshot `json:"snapshot"`
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for corrupted inventories...")

	iter := client.Scan(ctx, 0, "inventory:*", 0).Iterator()

	var corruptedKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var stored storedInventory
		if err := json.Unmarshal([]byte(data), &stored); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		if problem := check(stored.Snapshot); problem != "" {
			fmt.Printf("✗ %s: %s\n", key, problem)
			corruptedKeys = append(corruptedKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d keys, found %d corrupted entries\n", checkedCount, len(corruptedKeys))

	if len(corruptedKeys) == 0 {
		fmt.Println("No corrupted data found!")
		return
	}

	fmt.Println("\nCorrupted keys:")
	for _, key := range corruptedKeys {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDo you want to DELETE these corrupted entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response == "yes" {
		for _, key := range corruptedKeys {
			if err := client.Del(ctx, key).Err(); err != nil {
				fmt.Printf("Failed to delete %s: %v\n", key, err)
			} else {
				fmt.Printf("Deleted %s\n", key)
			}
		}
		fmt.Println("\nCleanup complete!")
	} else {
		fmt.Println("Aborted - no changes made")
	}
}

// check reports why a snapshot cannot be loaded as saved, or "" when it can
func check(snap *entities.InventorySnapshot) string {
	if snap == nil {
		return "no snapshot"
	}
	if len(snap.Stored) > inventory.DefaultStoredSlots {
		return fmt.Sprintf("%d stored slots, want at most %d", len(snap.Stored), inventory.DefaultStoredSlots)
	}
	if len(snap.Active) > inventory.DefaultActiveSlots {
		return fmt.Sprintf("%d active slots, want at most %d", len(snap.Active), inventory.DefaultActiveSlots)
	}

	seen := make(map[string]bool)
	for _, slots := range [][]*entities.Item{snap.Stored, snap.Active} {
		for _, item := range slots {
			if item == nil {
				continue
			}
			if item.ID == "" {
				return "item without an id"
			}
			if seen[item.ID] {
				return fmt.Sprintf("item %s held twice", item.ID)
			}
			seen[item.ID] = true
		}
	}
	return ""
}
