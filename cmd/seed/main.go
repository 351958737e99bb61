package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// CLI flags
var (
	dsn      = flag.String("dsn", "", "Postgres DSN (default: env DATABASE_URL)")
	adminEml = flag.String("email", "", "Admin email (default: env ADMIN_EMAIL)")
	adminPwd = flag.String("password", "", "Admin password (default: env ADMIN_PASSWORD)")
	dryRun   = flag.Bool("dry-run", false, "Print the plan; no DB writes")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *dsn == "" {
		*dsn = os.Getenv("DATABASE_URL")
	}
	if *adminEml == "" {
		*adminEml = os.Getenv("ADMIN_EMAIL")
	}
	if *adminPwd == "" {
		*adminPwd = os.Getenv("ADMIN_PASSWORD")
	}

	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}
	if *adminEml == "" || *adminPwd == "" {
		fatalf("admin email and password required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}

	if *dryRun {
		fmt.Printf("Would upsert admin user %s\n", *adminEml)
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*adminPwd), bcrypt.DefaultCost)
	if err != nil {
		fatalf("hash password: %v", err)
	}

	if _, err := db.ExecContext(ctx, `CREATE SCHEMA IF NOT EXISTS "app_auth"`); err != nil {
		fatalf("ensure schema: %v", err)
	}

	// Same table the app migrates; IF NOT EXISTS keeps the seeder usable
	// against an empty database.
	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS app_auth.users (
		user_id text PRIMARY KEY,
		email text NOT NULL UNIQUE,
		hashed_password text,
		role text DEFAULT 'admin'
	)`)
	if err != nil {
		fatalf("ensure table: %v", err)
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO app_auth.users (user_id, email, hashed_password, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO UPDATE SET hashed_password = EXCLUDED.hashed_password`,
		uuid.New().String(), *adminEml, string(hashed))
	if err != nil {
		fatalf("upsert admin: %v", err)
	}

	rows, _ := result.RowsAffected()
	fmt.Printf("Admin user %s ready (rows affected: %d)\n", *adminEml, rows)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
