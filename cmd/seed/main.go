package main

import (
	"log"
	"time"

	"boatwork/internal/config"
	"boatwork/internal/database"
	"boatwork/internal/domain"
	"boatwork/internal/modules/notification"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a demo marketplace: one boat owner with an open hull-cleaning
// request and three providers bidding on it at different price points.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.ServiceRequest{},
		&domain.Bid{},
		&domain.AssignedJob{},
		&domain.Review{},
		&domain.Payment{},
		&domain.Payout{},
		&notification.Notification{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	owner := seedUser(db, "owner@example.com", "Marina Ortiz", domain.RoleOwner, 0, 0)
	fast := seedUser(db, "fastboats@example.com", "Fast Boats LLC", domain.RoleProvider, 47, 10)
	budget := seedUser(db, "budgetdive@example.com", "Budget Dive Co", domain.RoleProvider, 12, 4)
	newcomer := seedUser(db, "newcleaner@example.com", "New Cleaner", domain.RoleProvider, 0, 0)

	deadline := time.Now().AddDate(0, 0, 14)
	req := &domain.ServiceRequest{
		OwnerID:           owner.ID,
		BoatID:            1,
		ServiceType:       "hull_cleaning",
		Budget:            550000,
		DeadlineFlexible:  false,
		DeadlineDate:      &deadline,
		DeadlineQualifier: "before",
		TimeOfDay:         "morning",
		Lat:               25.7617,
		Lng:               -80.1918,
		LocationLabel:     "Miami Marina, dock B",
		Status:            domain.JobOpen,
	}
	if err := db.Where("owner_id = ? AND service_type = ?", owner.ID, req.ServiceType).
		FirstOrCreate(req).Error; err != nil {
		log.Fatalf("seed request: %v", err)
	}

	seedBid(db, req.ID, fast.ID, 600000, "Full hull and prop, done in one visit")
	seedBid(db, req.ID, budget.ID, 400000, "Cheapest in the marina")
	seedBid(db, req.ID, newcomer.ID, 500000, "Happy to do it this week")

	log.Printf("Seed complete: request #%d with 3 bids (owner #%d)", req.ID, owner.ID)
}

func seedUser(db *gorm.DB, email, name string, role domain.Role, ratingSum, reviewCount int64) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		RatingSum:    ratingSum,
		ReviewCount:  reviewCount,
	}
	if err := db.Where("email = ?", email).FirstOrCreate(u).Error; err != nil {
		log.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func seedBid(db *gorm.DB, jobID, providerID, price int64, message string) {
	b := &domain.Bid{
		JobID:      jobID,
		ProviderID: providerID,
		Price:      price,
		Message:    message,
	}
	if err := db.Where("job_id = ? AND provider_id = ?", jobID, providerID).
		FirstOrCreate(b).Error; err != nil {
		log.Fatalf("seed bid: %v", err)
	}
}
