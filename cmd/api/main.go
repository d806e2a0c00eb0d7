package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
	"github.com/lmjin/marketplace-dapp/internal/modules/accounts"
	"github.com/lmjin/marketplace-dapp/internal/modules/authz"
	"github.com/lmjin/marketplace-dapp/internal/modules/catalog"
	"github.com/lmjin/marketplace-dapp/internal/modules/trade"
	"github.com/lmjin/marketplace-dapp/internal/snapshot"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	store := ledger.NewStore()
	bus := ledger.NewBus()

	// ── Durability (optional) ───────────────────────────────
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal(err)
		}

		snapStore, err := snapshot.NewPostgresStore(db)
		if err != nil {
			log.Fatal(err)
		}
		snap, err := snapStore.Load(context.Background())
		switch {
		case err == nil:
			store.Restore(snap)
			log.Println("ledger restored from snapshot")
		case errors.Is(err, snapshot.ErrNoSnapshot):
			log.Println("no ledger snapshot, starting empty")
		default:
			log.Fatal(err)
		}

		// Persist after every committed mutation. Advisory: a failed
		// save is logged, never propagated into the ledger.
		bus.Subscribe(func(ledger.Event) {
			if err := snapStore.Save(context.Background(), store.Snapshot()); err != nil {
				log.Printf("snapshot save failed: %v", err)
			}
		})
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	accountsRepo := accounts.NewMemoryRepository()
	accountsService := accounts.NewService(accountsRepo, []byte(secret))
	accounts.NewHandler(accountsService).RegisterRoutes(router)

	// ── Marketplace core ────────────────────────────────────
	authzService := authz.NewService(store, bus)
	authz.NewHandler(authzService, accountsService).RegisterRoutes(router)

	catalogService := catalog.NewService(store, bus)
	catalog.NewHandler(catalogService, accountsService).RegisterRoutes(router)

	tradeService := trade.NewService(store, bus)
	trade.NewHandler(tradeService, accountsService).RegisterRoutes(router)

	// ── Admin bootstrap ─────────────────────────────────────
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	admin, err := accountsService.Register(context.Background(), adminEmail, adminPassword)
	if err != nil {
		log.Fatal(err)
	}
	store.Update(func(st *ledger.State) error {
		st.GrantRole(admin.Address, ledger.RoleAdmin)
		return nil
	})
	log.Printf("admin account %s ready at address %s", admin.Email, admin.Address)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Marketplace API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
