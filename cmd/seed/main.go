package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Seeds an admin account, default SLA settings and a small demo
// conversation so a fresh install has something to compute against.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	email := getenvDefault("SEED_USER_EMAIL", "admin@example.com")
	password := getenvDefault("SEED_USER_PASSWORD", "Admin1234!")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	if err := seedAdmin(db, email, password); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if err := seedSettings(db); err != nil {
		log.Fatalf("failed to seed settings: %v", err)
	}
	if err := seedDemoChat(db); err != nil {
		log.Fatalf("failed to seed demo chat: %v", err)
	}

	log.Println("Seed completed successfully")
}

func seedAdmin(db *sql.DB, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	query := `
	INSERT INTO users (id, email, password_hash, role, created_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (email) DO UPDATE SET
	  password_hash = EXCLUDED.password_hash,
	  role = EXCLUDED.role
	`
	_, err = db.Exec(query, uuid.NewString(), email, string(hash), "ADMIN", time.Now())
	if err != nil {
		return err
	}

	log.Printf("seeded admin user %s", email)
	return nil
}

func seedSettings(db *sql.DB) error {
	settings := map[string]string{
		"sla_config":          `{"pickupTarget":120,"firstResponseTarget":300,"avgResponseTarget":300,"resolutionTarget":7200,"complianceTarget":90}`,
		"office_hours_config": `{"start":"09:00","end":"17:00","workingDays":[1,2,3,4,5],"timezone":"UTC"}`,
		"enabled_metrics":     `{"pickup":true,"firstResponse":true,"avgResponse":false,"resolution":false}`,
	}

	for key, value := range settings {
		_, err := db.Exec(`
			INSERT INTO app_settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING
		`, key, value)
		if err != nil {
			return fmt.Errorf("insert setting %s: %w", key, err)
		}
	}

	return nil
}

func seedDemoChat(db *sql.DB) error {
	chatID := "demo-chat-001"
	opened := time.Now().Add(-48 * time.Hour).Truncate(time.Minute)
	pickedUp := opened.Add(60 * time.Second)
	firstResponse := opened.Add(3 * time.Minute)
	closed := opened.Add(90 * time.Minute)

	res, err := db.Exec(`
		INSERT INTO chats (id, opened_at, picked_up_at, response_at, closed_at, provider, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, chatID, opened, pickedUp, firstResponse, closed, "webchat", "MEDIUM")
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Demo chat already present, keep its messages as they are
		return nil
	}

	messages := []struct {
		role string
		at   time.Time
	}{
		{"CUSTOMER", opened},
		{"AGENT", firstResponse},
		{"CUSTOMER", opened.Add(10 * time.Minute)},
		{"AGENT", opened.Add(14 * time.Minute)},
		{"CUSTOMER", opened.Add(30 * time.Minute)},
		{"AGENT", opened.Add(36 * time.Minute)},
	}
	for _, m := range messages {
		_, err := db.Exec(`
			INSERT INTO chat_messages (chat_id, role, created_at)
			VALUES ($1, $2, $3)
		`, chatID, m.role, m.at)
		if err != nil {
			return err
		}
	}

	log.Printf("seeded demo chat %s", chatID)
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
