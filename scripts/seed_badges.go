package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

type seedDefinition struct {
	Name        string
	Description string
	Icon        string
	Color       string
	Category    string
	Criteria    string
	Rarity      string
}

var catalog = []seedDefinition{
	{"Hackathon Winner", "Won a campus hackathon", "trophy", "#FFD700", "COMPETITION", "First place in an official hackathon", "EPIC"},
	{"Hackathon Finalist", "Reached a hackathon final round", "medal", "#C0C0C0", "COMPETITION", "Top 10 in an official hackathon", "RARE"},
	{"Open Source Contributor", "Merged a contribution into an open source project", "git-merge", "#2DA44E", "TECHNICAL", "At least one merged PR", "RARE"},
	{"Research Assistant", "Assisted a faculty research project", "flask", "#6F42C1", "RESEARCH", "One semester of assistance", "RARE"},
	{"Published Author", "Published in a peer-reviewed venue", "book", "#1F6FEB", "RESEARCH", "Accepted paper or article", "LEGENDARY"},
	{"Club Leader", "Led a registered student club", "users", "#FB8500", "LEADERSHIP", "One full term as club lead", "RARE"},
	{"Event Volunteer", "Volunteered at a campus event", "hand-heart", "#E85D75", "COMMUNITY", "Completed a volunteer shift", "COMMON"},
	{"Mentor", "Mentored junior students", "compass", "#0EA5E9", "COMMUNITY", "Completed a mentorship cycle", "RARE"},
	{"Dean's List", "Placed on the dean's list", "star", "#F59E0B", "ACADEMIC", "Semester GPA above threshold", "EPIC"},
	{"Perfect Attendance", "Full attendance for a semester", "calendar-check", "#10B981", "ACADEMIC", "Zero unexcused absences", "COMMON"},
}

func main() {
	fmt.Println("seeding badge definition catalog...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	systemUser := os.Getenv("SEED_ADMIN_ID")
	if systemUser == "" {
		systemUser = uuid.Nil.String()
	}
	createdBy, err := uuid.Parse(systemUser)
	if err != nil {
		log.Fatalf("invalid SEED_ADMIN_ID: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO badge_definitions (id, name, description, icon, color, category, criteria, rarity, created_by, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, $10)
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			icon = EXCLUDED.icon,
			color = EXCLUDED.color,
			category = EXCLUDED.category,
			criteria = EXCLUDED.criteria,
			rarity = EXCLUDED.rarity
	`
	for _, d := range catalog {
		_, err := pool.Exec(context.Background(), query,
			uuid.New(), d.Name, d.Description, d.Icon, d.Color,
			d.Category, d.Criteria, d.Rarity, createdBy, time.Now(),
		)
		if err != nil {
			log.Fatalf("cannot seed badge '%s': %v", d.Name, err)
		}
	}

	if collegeEnv := os.Getenv("SEED_COLLEGE_ID"); collegeEnv != "" {
		collegeID, err := uuid.Parse(collegeEnv)
		if err != nil {
			log.Fatalf("invalid SEED_COLLEGE_ID: %v", err)
		}
		policyQuery := `
			INSERT INTO badge_policies (id, college_id, event_creation_required, category_diversity_min, is_active, created_at, updated_at)
			VALUES ($1, $2, 8, 4, TRUE, $3, $3)
			ON CONFLICT (college_id) DO NOTHING
		`
		if _, err := pool.Exec(context.Background(), policyQuery, uuid.New(), collegeID, time.Now()); err != nil {
			log.Fatalf("cannot seed default policy: %v", err)
		}
		fmt.Printf("seeded default policy for college %s\n", collegeID)
	}

	fmt.Printf("seeded %d badge definitions successfully!\n", len(catalog))
}
