package contact

import (
	"log"

	"github.com/maxapp/site-backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&Submission{}); err != nil {
		log.Fatal("Failed to auto-migrate contact tables: ", err)
	}
}
