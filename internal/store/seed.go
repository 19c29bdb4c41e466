package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/amour-lingua/internal/crypto"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/models"
)

// SeedPassword is the password of every fixture user.
const SeedPassword = "password123"

// SeedUsername is the fixture user that owns the seeded favorites. Demo
// mode acts as this user.
const SeedUsername = "test"

type seedUser struct {
	username string
	email    string
	name     string
	lang     models.Language
}

type seedTranslation struct {
	source     string
	translated string
	from, to   models.Language
}

var (
	seedUsers = []seedUser{
		{username: SeedUsername, email: "test@example.com", name: "Test User", lang: models.English},
		{username: "marie", email: "marie@example.com", name: "Marie Dupont", lang: models.French},
		{username: "pierre", email: "pierre@example.com", name: "Pierre Lemaire", lang: models.French},
		{username: "emma", email: "emma@example.com", name: "Emma Johnson", lang: models.English},
	}

	seedTranslations = []seedTranslation{
		{source: "Hello, how are you?", translated: "Bonjour, comment allez-vous?", from: models.English, to: models.French},
		{source: "I'm learning French", translated: "J'apprends le français", from: models.English, to: models.French},
		{source: "Je suis très heureux de vous rencontrer", translated: "I am very happy to meet you", from: models.French, to: models.English},
	}
)

// Seed inserts the fixture users and the favorite translations of
// [SeedUsername]. Users that already exist are left untouched, and the
// translations are only added together with a newly created "test" user,
// so repeated runs against a persistent database do not duplicate data.
func Seed(ctx context.Context, storages *Storages, hasher crypto.PasswordHasher, now time.Time) error {
	log := logger.FromContext(ctx)

	var owner *models.User
	for _, fixture := range seedUsers {
		hash, err := hasher.Hash(SeedPassword)
		if err != nil {
			return fmt.Errorf("error hashing fixture password: %w", err)
		}

		name := fixture.name
		created, err := storages.UserRepository.CreateUser(ctx, models.User{
			Username:       fixture.username,
			Password:       hash,
			Email:          fixture.email,
			Name:           &name,
			LangPreference: fixture.lang,
		})
		if errors.Is(err, ErrUsernameAlreadyExists) || errors.Is(err, ErrEmailAlreadyExists) {
			log.Debug().Str("func", "store.Seed").Str("username", fixture.username).Msg("fixture user already exists")
			continue
		}
		if err != nil {
			return fmt.Errorf("error seeding user %q: %w", fixture.username, err)
		}

		if fixture.username == SeedUsername {
			owner = &created
		}
	}

	if owner == nil {
		return nil
	}

	for i, fixture := range seedTranslations {
		userID := owner.UserID
		_, err := storages.TranslationRepository.CreateTranslation(ctx, models.Translation{
			UserID:         &userID,
			SourceText:     fixture.source,
			TranslatedText: fixture.translated,
			FromLang:       fixture.from,
			ToLang:         fixture.to,
			Favorite:       true,
			// keep the fixture order stable under newest-first listing
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
		if err != nil {
			return fmt.Errorf("error seeding translation: %w", err)
		}
	}

	log.Info().Str("func", "store.Seed").Int("users", len(seedUsers)).Int("translations", len(seedTranslations)).Msg("fixtures seeded")
	return nil
}
