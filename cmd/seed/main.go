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

// Seeds (or refreshes) the bootstrap admin account so a fresh deployment
// has someone who can approve actions and create the other users.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	username := getenvDefault("SEED_ADMIN_USERNAME", "admin")
	password := getenvDefault("SEED_ADMIN_PASSWORD", "ChangeMe123!")
	name := getenvDefault("SEED_ADMIN_NAME", "Administrator")
	email := getenvDefault("SEED_ADMIN_EMAIL", "admin@example.com")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	query := `
	INSERT INTO users (id, name, email, username, password_hash, mobile_no, role, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, '', 'admin', 'active', $6, $6)
	ON CONFLICT (username) DO UPDATE SET
	  password_hash = EXCLUDED.password_hash,
	  status = 'active',
	  updated_at = EXCLUDED.updated_at
	RETURNING id
	`

	var id string
	err = db.QueryRow(query, uuid.NewString(), name, email, username, string(hash), time.Now().UTC()).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	fmt.Printf("Seeded admin user: username=%s id=%s\n", username, id)
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
