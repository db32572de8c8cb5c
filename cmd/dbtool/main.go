package main

import (
	"context"
	"flag"
	"log"
	"meetup-point-service/internal/adapters/repositories"
	"meetup-point-service/internal/config"
	"meetup-point-service/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool initializes the schema and optionally pre-seeds the geocode cache.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := flag.String("driver", config.Get("MEETUP__DB__DRIVER", db.DriverSQLite), "database driver: sqlite or postgres")
	dsn := flag.String("dsn", "", "sqlite path or postgres url (defaults from MEETUP__DB__PATH / MEETUP__DB__URL)")
	seedPath := flag.String("seed", config.Get("SEED_PATH", ""), "optional JSON file of {address, lat, lng} geocodes")
	flag.Parse()

	if *dsn == "" {
		if *driver == db.DriverPostgres {
			*dsn = config.Get("MEETUP__DB__URL", "")
		} else {
			*dsn = config.Get("MEETUP__DB__PATH", "data/meetup.db")
		}
	}
	if *dsn == "" {
		log.Fatal("database dsn is required")
	}

	conn, err := db.Open(*driver, *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn, *driver); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *seedPath == "" {
		return
	}

	log.Println("Seeding geocode cache...")
	n, err := repositories.SeedGeocodesFromJSON(ctx, conn, *driver, *seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. addresses=%d", n)
}
