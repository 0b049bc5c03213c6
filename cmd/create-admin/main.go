package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/agriquote/agriquote-backend/internal/platform"
	"github.com/agriquote/agriquote-backend/internal/users"
	"github.com/agriquote/agriquote-backend/pkg/config"
	"github.com/agriquote/agriquote-backend/pkg/enums"
	"github.com/agriquote/agriquote-backend/pkg/logger"
	"github.com/agriquote/agriquote-backend/pkg/types"
	"github.com/joho/godotenv"
)

// Admins cannot self-register over HTTP; this is the only way to add one besides the seed.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "create-admin"})

	_ = godotenv.Load()

	name := flag.String("name", "", "admin display name")
	phone := flag.String("phone", "", "admin login phone")
	district := flag.String("district", "Pune", "admin district")
	subDistrict := flag.String("sub-district", "", "admin sub-district (optional)")
	flag.Parse()

	if *name == "" || *phone == "" {
		fmt.Fprintln(os.Stderr, "both -name and -phone are required")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "create-admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	plat, err := platform.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage", err)
		os.Exit(1)
	}
	defer plat.Close()

	registry, err := users.NewService(plat.Users, logg)
	if err != nil {
		logg.Error(ctx, "failed to create users service", err)
		os.Exit(1)
	}

	admin, err := registry.Register(ctx, users.RegisterInput{
		Name:    *name,
		Phone:   *phone,
		Role:    enums.RoleAdmin,
		Address: types.Address{District: *district, SubDistrict: *subDistrict},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("admin created")
	fmt.Printf("id:       %s\n", admin.ID)
	fmt.Printf("name:     %s\n", admin.Name)
	fmt.Printf("phone:    %s\n", admin.Phone)
	fmt.Printf("district: %s\n", admin.Address.District)
}
