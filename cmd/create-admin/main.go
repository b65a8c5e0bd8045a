// Command create-admin creates an administrator account for the catalog API.
//
//	create-admin -name "Ana" -email ana@fitai.app -password 's3nh4-forte'
//
// The database and JWT settings are read the same way the server reads them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"fitai/plan-service/internal/apperr"
	"fitai/plan-service/internal/config"
	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/repository/mongo"
	"fitai/plan-service/internal/service"
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "password (or ADMIN_PASSWORD)")
	configPath := flag.String("config", ".", "directory holding config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.Database.Driver == "memory" {
		log.Fatal("FATAL: database.driver is memory; an admin created here would not survive")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.ConnectDB(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(client); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	db := client.Database(cfg.Database.Name)

	// The unique email index is what rejects a second admin with the same address.
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Printf("WARN: Could not ensure indexes: %v", err)
	}

	auth := service.NewAuthService(mongo.NewMongoUserRepository(db), cfg.JWT.Secret, cfg.JWT.Expiration)
	user, err := auth.Register(ctx, *name, *email, *password, domain.RoleAdmin)
	switch {
	case errors.Is(err, apperr.ErrMissingFields):
		log.Fatalf("missing flags: %v", apperr.FieldsOf(err))
	case err != nil:
		log.Fatalf("create admin: %v", err)
	}

	fmt.Printf("admin created: %s <%s> id=%s\n", user.Name, user.Email, user.ID.Hex())
}
