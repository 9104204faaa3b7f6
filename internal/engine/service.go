package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wichardvalente37/war-path-progress/internal/storage"
)

// Service applies the reward rules over the storage repos. Mutations that
// touch more than one table run inside a single transaction.
type Service struct {
	db           *sql.DB
	users        *storage.UserRepo
	profiles     *storage.ProfileRepo
	missions     *storage.MissionRepo
	goals        *storage.GoalRepo
	categories   *storage.CategoryRepo
	achievements *storage.AchievementRepo
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:           db,
		users:        storage.NewUserRepo(db),
		profiles:     storage.NewProfileRepo(db),
		missions:     storage.NewMissionRepo(db),
		goals:        storage.NewGoalRepo(db),
		categories:   storage.NewCategoryRepo(db),
		achievements: storage.NewAchievementRepo(db),
	}
}

func (s *Service) UserRepo() *storage.UserRepo               { return s.users }
func (s *Service) ProfileRepo() *storage.ProfileRepo         { return s.profiles }
func (s *Service) MissionRepo() *storage.MissionRepo         { return s.missions }
func (s *Service) GoalRepo() *storage.GoalRepo               { return s.goals }
func (s *Service) CategoryRepo() *storage.CategoryRepo       { return s.categories }
func (s *Service) AchievementRepo() *storage.AchievementRepo { return s.achievements }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "is required"}
	}
	return t, nil
}

// CreateAccount creates a user row and its profile (xp=0, level=1) in one
// transaction. The password must already be hashed by the caller.
func (s *Service) CreateAccount(ctx context.Context, email, passwordHash string) (*storage.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ValidationError{Field: "email", Reason: "is required"}
	}

	u := storage.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: passwordHash,
	}
	username := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		username = email[:i]
	}

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := storage.NewUserRepo(tx)
		existing, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailTaken
		}
		if err := users.Insert(ctx, u); err != nil {
			return err
		}
		return storage.NewProfileRepo(tx).Insert(ctx, u.ID, username)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// localEmail identifies the account the CLI/TUI commands operate on. The
// stored password is a marker, not a usable bcrypt hash, so the local
// account cannot log in over the API.
const localEmail = "local@warpath"

// GetOrCreateLocalUser returns the CLI's local account, creating it on
// first use.
func (s *Service) GetOrCreateLocalUser(ctx context.Context) (*storage.User, error) {
	u, err := s.users.GetByEmail(ctx, localEmail)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}
	u, err = s.CreateAccount(ctx, localEmail, "!local")
	if err != nil && errors.Is(err, ErrEmailTaken) {
		// Raced with another invocation; fetch what it created.
		return s.users.GetByEmail(ctx, localEmail)
	}
	return u, err
}

// Profile returns the user's profile, recomputing the stored level if it
// drifted from the formula (e.g. after manual edits to the database).
func (s *Service) Profile(ctx context.Context, userID string) (*storage.Profile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
	}
	computed := LevelForXP(p.XP)
	if p.Level != computed {
		p.Level = computed
		if err := s.profiles.UpdateXPLevel(ctx, userID, p.XP, computed); err != nil {
			return nil, err
		}
	}
	return p, nil
}
