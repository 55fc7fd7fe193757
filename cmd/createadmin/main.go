// Command createadmin interactively provisions an administrator account.
// The password is read without terminal echo.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/listkeeper/internal/server/config"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/listkeeper/internal/server/services"
	"github.com/joho/godotenv"
	"golang.org/x/term"
)

func main() {

	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	manager := repomanager.NewPostgresRepositoryManager()

	if err := manager.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	email, err := prompt(reader, "Email: ")
	if err != nil {
		log.Fatalf("error reading email: %v", err)
	}

	fullName, err := prompt(reader, "Full name: ")
	if err != nil {
		log.Fatalf("error reading full name: %v", err)
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Fatalf("error reading password: %v", err)
	}

	userService := services.NewUserService(db, manager)

	user, err := userService.Create(ctx, services.CreateUserInput{
		FullName: fullName,
		Email:    email,
		Password: string(password),
		Roles:    []models.Role{models.RoleAdmin, models.RoleSuperUser},
	})
	if err != nil {
		log.Fatalf("error creating admin: %v", err)
	}

	fmt.Printf("Admin account created: %s (%s)\n", user.Email, user.ID)
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
