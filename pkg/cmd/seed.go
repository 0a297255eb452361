package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/storage"
	"github.com/yeisme/photovault/pkg/internal/types"
)

var (
	seedUsername string
	seedEmail    string

	seedAdminCmd = &cobra.Command{
		Use:   "seed-admin",
		Short: "create an initial admin account, printing its password once",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mgr, err := storage.Init(ctx)
			if err != nil {
				return fmt.Errorf("init storage: %w", err)
			}

			dbc := mgr.GetDBClient()
			if dbc == nil {
				return fmt.Errorf("database not initialized")
			}

			if err := model.AutoMigrate(dbc.GetDB()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			ctx = ctxPkg.WithStorageManager(ctx, mgr)

			svc := service.NewUserService(ctx)

			created, err := svc.Create(ctx, &types.CreateUserRequest{
				Username: seedUsername,
				Email:    seedEmail,
				Role:     string(model.RoleAdmin),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "admin account created")
			fmt.Fprintln(cmd.OutOrStdout(), "  username:", created.User.Username)
			fmt.Fprintln(cmd.OutOrStdout(), "  password:", created.InitialPassword)
			fmt.Fprintln(cmd.OutOrStdout(), "the password is shown only once, store it safely")

			return nil
		},
	}
)

// registerSeedCommands 注册初始化数据相关命令.
func registerSeedCommands() {
	seedAdminCmd.Flags().StringVar(&seedUsername, "username", "admin", "admin username")
	seedAdminCmd.Flags().StringVar(&seedEmail, "email", "admin@example.com", "admin email")

	rootCmd.AddCommand(seedAdminCmd)
}
