package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rsilveira/licoes/internal/auth"
	"github.com/rsilveira/licoes/internal/backend"
	"github.com/rsilveira/licoes/internal/config"
	"github.com/rsilveira/licoes/internal/domain"
	"github.com/rsilveira/licoes/internal/favorites"
	"github.com/rsilveira/licoes/internal/filter"
	"github.com/rsilveira/licoes/internal/listing"
	"github.com/rsilveira/licoes/internal/log"
	"github.com/rsilveira/licoes/internal/search"
	"github.com/rsilveira/licoes/internal/seen"
	"github.com/rsilveira/licoes/internal/store"
	"github.com/rsilveira/licoes/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var anonymous bool
	var clearCache bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&anonymous, "anonymous", false, "browse without signing in")
	flag.BoolVar(&clearCache, "clear-cache", false, "clear local cache and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("licoes %s\n", Version)
		return
	}

	if clearCache {
		if err := config.ClearCache(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Cache limpo.")
		return
	}

	if err := run(anonymous); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(anonymous bool) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting licoes", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	// Open the local store; fall back to memory-only if the cache
	// directory is unusable
	local, err := store.NewLocalStore(config.GetCachePath())
	if err != nil {
		logger.Warn("local store unavailable, state will not persist", "error", err)
		local, _ = store.NewLocalStore("")
	}
	defer local.Close()

	// Create backend clients
	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.APIKey, logger)
	identity := auth.NewClient(cfg.Backend.AuthURL, cfg.Backend.APIKey, logger)

	// Sign in unless browsing anonymously
	var user *domain.User
	if !anonymous {
		user, err = signIn(identity, local, logger)
		if err != nil {
			return err
		}
	}
	if user != nil {
		client.SetToken(user.Token)
	}

	// Create the per-kind pipeline services
	debounce := time.Duration(cfg.Listing.DebounceMS) * time.Millisecond
	svcByKind := make(map[domain.Kind]tui.Services, 2)
	for _, kind := range []domain.Kind{domain.KindLessons, domain.KindActivities} {
		svcByKind[kind] = tui.Services{
			Filters:   filter.NewStore(kind, local, debounce, logger),
			Listing:   listing.NewService(client, kind, cfg.Listing.PageSize, logger),
			Favorites: favorites.NewService(client, logger),
			Search:    search.NewService(logger),
			Seen:      seen.NewTracker(local, logger),
		}
	}

	kind := domain.Kind(cfg.UI.DefaultKind)
	if kind != domain.KindLessons && kind != domain.KindActivities {
		kind = domain.KindLessons
	}

	model := tui.NewModel(svcByKind, user, kind, cfg.UI.ShowSeen, logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// signIn runs the interactive sign-in and reconciles the local store with
// the signed-in account. Per-user state from a previous account is wiped
// when a different user signs in.
func signIn(identity *auth.Client, local *store.LocalStore, logger *slog.Logger) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	user, err := auth.PromptSignIn(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrAuthFailed) {
			return nil, fmt.Errorf("email ou senha incorretos")
		}
		return nil, err
	}

	if prev, ok := local.GetSessionUID(); ok && prev != user.UID {
		logger.Info("account changed, clearing local user state", "previous", prev, "current", user.UID)
		if err := local.ClearUserState(); err != nil {
			logger.Warn("failed to clear previous user state", "error", err)
		}
	}
	if err := local.SaveSessionUID(user.UID); err != nil {
		logger.Warn("failed to persist session", "error", err)
	}

	return user, nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Bem-vindo!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	prompt := func(label string) (string, error) {
		for {
			fmt.Printf("%s: ", label)
			input, err := reader.ReadString('\n')
			if err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			if value := strings.TrimSpace(input); value != "" {
				return value, nil
			}
			fmt.Println("O valor não pode ser vazio.")
		}
	}

	url, err := prompt("URL do servidor de conteúdo")
	if err != nil {
		return err
	}
	authURL, err := prompt("URL do servidor de autenticação")
	if err != nil {
		return err
	}
	apiKey, err := prompt("Chave de API do projeto")
	if err != nil {
		return err
	}

	cfg.Backend.URL = url
	cfg.Backend.AuthURL = authURL
	cfg.Backend.APIKey = apiKey

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuração salva!")
	fmt.Println()
	fmt.Println("Execute licoes novamente para iniciar o aplicativo.")

	return nil
}
