// Command parlourctl runs maintenance tasks against a parlour deployment.
//
//	parlourctl seed     create the default dashboard accounts and sample staff
//	parlourctl keygen   print a fresh PARLOUR_PASETO_SECRET
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"parlour-api/config"
	"parlour-api/pkg/logger"
	util "parlour-api/pkg/utils"
	"parlour-api/repository"
	"parlour-api/seeder"
)

const seedTimeout = 30 * time.Second

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := logger.Init("info"); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logging:", err)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "seed":
		err = seed()
	case "keygen":
		err = keygen()
	case "help", "-h", "--help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: parlourctl <seed|keygen>")
}

func keygen() error {
	key, err := util.NewSecretKey()
	if err != nil {
		return err
	}
	fmt.Println(key)
	return nil
}

func seed() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	client, err := config.MongoConnect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DBName)
	if err := config.InitDatabase(ctx, db); err != nil {
		return err
	}

	users, err := seeder.SeedUsers(ctx, repository.NewUserRepository(db))
	if err != nil {
		return err
	}
	employees, err := seeder.SeedEmployees(ctx, repository.NewEmployeeRepository(db))
	if err != nil {
		return err
	}

	fmt.Printf("seeded %d users and %d employees\n", users, employees)
	if users > 0 {
		fmt.Printf("login with superadmin@parlour.com or admin@parlour.com, password %q\n", seeder.DefaultPassword)
	}
	return nil
}
