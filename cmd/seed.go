/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/easytech/webapi/config"
	"github.com/easytech/webapi/internal/db"
	"github.com/easytech/webapi/internal/services"
	"github.com/easytech/webapi/internal/store"
	"github.com/spf13/cobra"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the admin user and sample content into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		ctx := cmd.Context()

		backend, err := db.OpenDocumentStore(ctx, cfg)
		if err != nil {
			return err
		}
		st := store.New(backend)
		defer st.Close(ctx)

		if err := st.Init(ctx); err != nil {
			return fmt.Errorf("init store: %w", err)
		}

		users := services.NewUserService(st.Users)
		seeded, err := services.SeedSiteContent(ctx, st, users, cfg.SeedAdminPassword)
		if err != nil {
			return err
		}
		if seeded {
			log.Println("seeded initial site content")
		} else {
			log.Println("users collection is not empty; nothing to seed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
