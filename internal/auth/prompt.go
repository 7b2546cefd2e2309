package auth

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/rsilveira/licoes/internal/domain"
	"golang.org/x/term"
)

// PromptSignIn runs the interactive sign-in flow: prompts for email and
// password (hidden input) and authenticates against the identity provider.
func PromptSignIn(ctx context.Context, provider domain.IdentityProvider) (*domain.User, error) {
	fmt.Println()
	fmt.Println("Entrar")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━")

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read email: %w", err)
	}
	email = strings.TrimSpace(email)

	// Hidden password input
	fmt.Print("Senha: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println() // Add newline after hidden input

	user, err := provider.SignIn(ctx, email, string(passwordBytes))
	if err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Printf("Bem-vindo, %s!\n", user.Name)

	return user, nil
}
