// Maintenance CLI for operators. Talks straight to PostgreSQL; Redis is not
// needed for any of its commands.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"skillswap/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  deactivate <user-id>    disable an account")
		fmt.Println("  release-slot <slot-id>  force-release a booked slot")
		fmt.Println("  stats                   print table counts")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "deactivate":
		if len(os.Args) < 3 {
			log.Fatal("deactivate requires a user ID")
		}
		deactivateUser(db, os.Args[2])
	case "release-slot":
		if len(os.Args) < 3 {
			log.Fatal("release-slot requires a slot ID")
		}
		id, err := strconv.ParseUint(os.Args[2], 10, 32)
		if err != nil {
			log.Fatalf("invalid slot ID: %v", err)
		}
		releaseSlot(db, uint(id))
	case "stats":
		printStats(db)
	default:
		log.Fatalf("unknown command %q", os.Args[1])
	}
}

func deactivateUser(db *gorm.DB, userID string) {
	res := db.Model(&models.User{}).Where("id = ?", userID).Update("is_active", false)
	if res.Error != nil {
		log.Fatalf("failed to deactivate user: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Fatalf("user %s not found", userID)
	}
	fmt.Printf("user %s deactivated\n", userID)
}

// releaseSlot clears the booked flag on a slot whose accepted request was
// abandoned out of band. The linked request is cancelled too so the slot
// doesn't end up with a dangling active request.
func releaseSlot(db *gorm.DB, slotID uint) {
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.AvailabilitySlot{}).
			Where("id = ? AND is_booked = ?", slotID, true).
			Update("is_booked", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("slot %d not found or not booked", slotID)
		}
		return tx.Model(&models.SessionRequest{}).
			Where("availability_id = ? AND status = ?", slotID, models.SessionAccepted).
			Update("status", models.SessionCancelled).Error
	})
	if err != nil {
		log.Fatalf("failed to release slot: %v", err)
	}
	fmt.Printf("slot %d released\n", slotID)
}

func printStats(db *gorm.DB) {
	tables := map[string]interface{}{
		"users":            &models.User{},
		"skills":           &models.Skill{},
		"availability":     &models.AvailabilitySlot{},
		"session_requests": &models.SessionRequest{},
		"match_requests":   &models.MatchRequest{},
		"conversations":    &models.Conversation{},
		"messages":         &models.Message{},
		"reviews":          &models.Review{},
	}
	for name, model := range tables {
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			log.Fatalf("failed to count %s: %v", name, err)
		}
		fmt.Printf("%-18s %d\n", name, count)
	}
}
