package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Timesheet-api/internal/application/auth"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/infrastructure/postgres"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Crea un usuario admin",
	Long:  "Crea un admin aunque el registro público esté deshabilitado (AUTH_ALLOW_REGISTRATION=false).",
	Example: `  timesheetctl seed-admin --email admin@example.com --password secreto
  timesheetctl seed-admin --email admin@example.com --password secreto --name "Ana"`,
	RunE: runSeedAdmin,
}

func init() {
	rootCmd.AddCommand(seedAdminCmd)

	seedAdminCmd.Flags().String("email", "", "Email del admin")
	seedAdminCmd.Flags().String("password", "", "Contraseña (mínimo 6 caracteres)")
	seedAdminCmd.Flags().String("name", "", "Nombre visible (por defecto el email)")
	_ = seedAdminCmd.MarkFlagRequired("email")
	_ = seedAdminCmd.MarkFlagRequired("password")
}

func runSeedAdmin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	name, _ := cmd.Flags().GetString("name")

	cfg, log, pool, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, err := uc.RegisterAdmin(ctx, dto.RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return fmt.Errorf("crear admin: %w", err)
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin creado")
	return nil
}
