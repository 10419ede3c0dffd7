package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/easytech/webapi/internal/store"
	"github.com/easytech/webapi/types"
)

const (
	seedAdminUsername = "admin"
	seedAdminEmail    = "admin@easytech.com"
)

// SeedSiteContent fills an empty store with the admin account and sample
// content. Without a configured password a random one is generated and
// logged once.
func SeedSiteContent(ctx context.Context, st *store.Store, users *UserService, adminPassword string) (bool, error) {
	generated := adminPassword == ""
	if generated {
		var err error
		if adminPassword, err = randomPassword(); err != nil {
			return false, err
		}
	}

	hash, err := users.HashPassword(adminPassword)
	if err != nil {
		return false, err
	}

	seeded, err := st.Seed(ctx, types.User{
		Username:     seedAdminUsername,
		Email:        seedAdminEmail,
		PasswordHash: hash,
	})
	if err != nil {
		return false, err
	}
	if seeded && generated {
		log.Printf("seeded admin user %q with generated password %s", seedAdminUsername, adminPassword)
	}
	return seeded, nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate admin password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
