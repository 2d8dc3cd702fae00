package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"storefront/internal/adapter/repo"
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/storage"
)

// sessionStore is the subset of the session repositories this tool needs.
type sessionStore interface {
	Load(ctx context.Context) (*domain.Session, error)
	SetTier(ctx context.Context, tier int, credits *int64) (*domain.Session, error)
}

func main() {
	_ = godotenv.Load()

	var (
		namespaceFlag string
		backendFlag   string
		tierFlag      int
		creditsFlag   int64
	)

	flag.StringVar(&namespaceFlag, "namespace", os.Getenv("STORE_NAMESPACE"), "store namespace (defaults to STORE_NAMESPACE or cyberpunk)")
	flag.StringVar(&backendFlag, "backend", os.Getenv("STORE_BACKEND"), "file or postgres (defaults to STORE_BACKEND or file)")
	flag.IntVar(&tierFlag, "tier", -1, "tier index to assign (negative prints the session only)")
	flag.Int64Var(&creditsFlag, "credits", -1, "credit balance to assign (negative keeps current balance)")
	flag.Parse()

	namespace := strings.TrimSpace(namespaceFlag)
	if namespace == "" {
		namespace = "cyberpunk"
	}
	backend := strings.ToLower(strings.TrimSpace(backendFlag))
	if backend == "" {
		backend = infra.BackendFile
	}

	logger := infra.NewLogger("cli").With().Str("cmd", "usertier").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var sessions sessionStore
	switch backend {
	case infra.BackendFile:
		fs, err := storage.NewFileStore(envOr("STORAGE_PATH", "./data"))
		if err != nil {
			exitWithError(err)
		}
		sessions = repo.NewLocalSessionRepository(fs, namespace)
	case infra.BackendPostgres:
		dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
		if dbURL == "" {
			exitWithError(errors.New("DATABASE_URL is required"))
		}
		pool, err := infra.NewDBPool(ctx, &infra.Config{DatabaseURL: dbURL})
		if err != nil {
			exitWithError(fmt.Errorf("failed to connect database: %w", err))
		}
		defer pool.Close()
		sessions = repo.NewSessionRepository(infra.NewSQLRunner(pool, logger), namespace)
	default:
		exitWithError(fmt.Errorf("unsupported backend %q", backend))
	}

	if tierFlag < 0 {
		s, err := sessions.Load(ctx)
		if err != nil {
			exitWithError(fmt.Errorf("failed to load session: %w", err))
		}
		printSession(namespace, s)
		return
	}

	data, err := catalog.LoadFile(os.Getenv("CATALOG_PATH"))
	if err != nil {
		exitWithError(fmt.Errorf("failed to load catalog: %w", err))
	}
	if !data.Tiers.Valid(tierFlag) {
		exitWithError(fmt.Errorf("tier %d: %w (have %d tiers)", tierFlag, domain.ErrOutOfRange, data.Tiers.Len()))
	}

	var credits *int64
	if creditsFlag >= 0 {
		credits = &creditsFlag
	}
	s, err := sessions.SetTier(ctx, tierFlag, credits)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			exitWithError(fmt.Errorf("namespace %q has no session; sign up first", namespace))
		}
		exitWithError(fmt.Errorf("failed to update session: %w", err))
	}
	tier, _ := data.Tiers.Get(s.CurrentTier)
	logger.Info().Int("tier", s.CurrentTier).Int64("credits", s.CreditBalance).Msg("session updated")
	fmt.Printf("Namespace %s updated to tier %d (%s)\n", namespace, s.CurrentTier, tier.Name)
	fmt.Printf("credits=%d\n", s.CreditBalance)
}

func printSession(namespace string, s *domain.Session) {
	fmt.Printf("Namespace %s\n", namespace)
	fmt.Printf("logged_in=%t\n", s.LoggedIn)
	fmt.Printf("tier=%d\n", s.CurrentTier)
	fmt.Printf("credits=%d\n", s.CreditBalance)
	fmt.Printf("purchases=%d\n", len(s.PurchaseHistory))
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
