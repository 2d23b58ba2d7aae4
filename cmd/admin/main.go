package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"
	repositories "stockroom/internal/infrastructure/repositories"
	"stockroom/pkg/config"
	"stockroom/pkg/logger"
)

// Out-of-band administrative tool: role elevation and starter inventory
// seeding. The HTTP API deliberately exposes neither.
func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	repoFactory, err := repositories.NewRepositoryFactory(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create repository factory: %v\n", err)
		os.Exit(1)
	}
	defer repoFactory.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch flag.Arg(0) {
	case "seed":
		if err := seed(ctx, repoFactory.CreateInventoryRepository()); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("inventory seeded")
	case "set-role":
		if flag.NArg() != 3 {
			usage()
			os.Exit(2)
		}
		uid := domain.UserID(flag.Arg(1))
		role := domain.Role(flag.Arg(2))
		if !domain.ValidRole(role) {
			fmt.Fprintf(os.Stderr, "unknown role %q (want viewer, editor or admin)\n", role)
			os.Exit(2)
		}
		if err := repoFactory.CreateRoleRepository().Set(ctx, uid, role); err != nil {
			fmt.Fprintf(os.Stderr, "set-role failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("role %q set for uid %s\n", role, uid)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin [-config path] seed | set-role <uid> <role>")
}

func seed(ctx context.Context, repo ports.InventoryRepository) error {
	items := []domain.Item{
		{Name: "Maple Tree", Quantity: 10, Price: 120, Category: "Plants & Trees"},
		{Name: "Oak Sapling", Quantity: 15, Price: 90, Category: "Plants & Trees"},
		{Name: "Rose Bush", Quantity: 40, Price: 25, Category: "Plants & Trees"},
		{Name: "Topsoil (40 lb bag)", Quantity: 80, Price: 6, Category: "Soil, Mulch & Fertilizer"},
		{Name: "Mulch (Cedar)", Quantity: 100, Price: 7, Category: "Soil, Mulch & Fertilizer"},
		{Name: "Patio Pavers (12x12 inch)", Quantity: 200, Price: 4, Category: "Stone, Gravel & Pavers"},
		{Name: "Shovel (Round Point)", Quantity: 20, Price: 25, Category: "Tools & Equipment"},
		{Name: "Garden Hose (50 ft)", Quantity: 25, Price: 30, Category: "Irrigation & Watering"},
		{Name: "Bird Bath", Quantity: 10, Price: 70, Category: "Outdoor Décor & Accessories"},
		{Name: "Snow Shovel", Quantity: 30, Price: 25, Category: "Seasonal Items"},
	}

	for i := range items {
		items[i].CreatedAt = time.Now().UTC()
		if _, err := repo.Push(ctx, &items[i]); err != nil {
			return fmt.Errorf("failed to push %q: %w", items[i].Name, err)
		}
	}
	return nil
}
