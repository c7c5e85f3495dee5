package admin

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/criteria"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
)

var firstNames = []string{"Ada", "Alan", "Barbara", "Claude", "Donald", "Edsger", "Frances", "Grace", "John", "Ken", "Leslie", "Margaret", "Niklaus", "Radia"}
var lastNames = []string{"Lovelace", "Turing", "Liskov", "Shannon", "Knuth", "Dijkstra", "Allen", "Hopper", "Backus", "Thompson", "Lamport", "Hamilton", "Wirth", "Perlman"}
var groups = []string{"", "A-1", "A-2", "B-1"}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// Seed creates demo users with generated credentials and spreads demo
// students between them at random. The credentials are printed once.
func (a *App) Seed(ctx context.Context, args []string) error {
	fs := a.newFlagSet("seed")
	userCount := fs.Int("users", 2, "number of users")
	studentCount := fs.Int("students", 14, "number of students")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userCount < 1 {
		return errors.New("seed needs at least one user")
	}

	users := make([]*models.User, 0, *userCount)
	for range *userCount {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
		userName := "user_" + suffix[:8]
		password := suffix[8:20]

		u, err := a.users.Register(ctx, userName+"@example.com", userName, password)
		if err != nil {
			return err
		}
		users = append(users, u)

		fmt.Fprintf(a.out, "Created user with ID %d\nUsername: %s\nPassword: %s\n\n", u.ID, userName, password)
	}

	for range *studentCount {
		owner := users[rand.IntN(len(users))]
		st := &models.Student{
			UserID:   owner.ID,
			FullName: firstNames[rand.IntN(len(firstNames))] + " " + lastNames[rand.IntN(len(lastNames))],
			Group:    groups[rand.IntN(len(groups))],
		}
		saved, err := a.students.Create(ctx, st)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created student with ID %d for user with ID %d\n", saved.ID, owner.ID)
	}

	return nil
}

// CreateUser registers one user. Without -password the password is
// prompted for.
func (a *App) CreateUser(ctx context.Context, args []string) error {
	fs := a.newFlagSet("create-user")
	email := fs.String("email", "", "email address")
	userName := fs.String("username", "", "login name")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *userName == "" {
		return errors.New("create-user requires -email and -username")
	}

	if *password == "" {
		pw, err := a.promptPassword()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		*password = pw
	}
	if *password == "" {
		return errors.New("password must not be empty")
	}

	u, err := a.users.Register(ctx, *email, *userName, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created user with ID %d\n", u.ID)
	return nil
}

// PurgeTokens deletes token rows of one user, rows older than a duration,
// or, when both are given, rows matching both. One of them is required.
func (a *App) PurgeTokens(ctx context.Context, args []string) error {
	fs := a.newFlagSet("purge-tokens")
	userID := fs.Int64("user", 0, "user id")
	olderThan := fs.Duration("older-than", 0, "minimum token age, e.g. 10m")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var filters []criteria.Filter
	if *userID > 0 {
		filters = append(filters, criteria.Equals("user_id", *userID))
	}
	if *olderThan > 0 {
		filters = append(filters, criteria.LessThan("created_at", a.now().UTC().Add(-*olderThan)))
	}

	var f criteria.Filter
	switch len(filters) {
	case 0:
		return errors.New("purge-tokens requires -user and/or -older-than")
	case 1:
		f = filters[0]
	default:
		f = criteria.And(filters[0], filters[1])
	}

	if _, err := a.rm.Tokens(a.db).DeleteByCriteria(ctx, criteria.New(f, criteria.None())); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Tokens purged")
	return nil
}
