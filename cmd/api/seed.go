package main

import (
	"context"
	"errors"

	"go-commerce-api/internal/config"
	"go-commerce-api/internal/model"
	"go-commerce-api/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// seedPrivilegesRolesAndAdmin creates default privileges, roles and the admin user if they
// don't exist. Failures are logged; the server still starts.
func seedPrivilegesRolesAndAdmin(
	cfg *config.Config,
	privilegeRepo repository.PrivilegeRepository,
	roleRepo repository.RoleRepository,
	userRepo repository.UserRepository,
	log zerolog.Logger,
) {
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Warn().Err(err).Msg("seed privileges")
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Warn().Err(err).Msg("seed roles")
	}

	allPrivileges, err := privilegeRepo.FindAll()
	if err != nil {
		log.Warn().Err(err).Msg("load privileges")
		return
	}

	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		if err := roleRepo.AssignPrivileges(adminRole, allPrivileges); err != nil {
			log.Warn().Err(err).Msg("assign admin privileges")
		} else {
			log.Info().Int("privileges", len(allPrivileges)).Msg("ADMIN role assigned all privileges")
		}
	}

	customerRole, err := roleRepo.FindByCode(model.RoleCustomer)
	if err == nil && len(customerRole.Privileges) == 0 {
		customerPrivileges, err := privilegeRepo.FindByCodes(model.CustomerPrivileges)
		if err == nil {
			err = roleRepo.AssignPrivileges(customerRole, customerPrivileges)
		}
		if err != nil {
			log.Warn().Err(err).Msg("assign customer privileges")
		}
	}

	if cfg.SeedAdminPassword == "" {
		log.Info().Msg("SEED_ADMIN_PASSWORD not set, skipping admin user")
		return
	}

	ctx := context.Background()
	_, err = userRepo.FindByEmail(ctx, cfg.SeedAdminEmail)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}

	adminRole, err = roleRepo.FindByCode(model.RoleAdmin)
	if err != nil {
		log.Warn().Err(err).Msg("load admin role")
		return
	}

	admin := &model.User{
		Email:      cfg.SeedAdminEmail,
		Username:   "admin",
		FirstName:  "Store",
		LastName:   "Administrator",
		RoleID:     &adminRole.ID,
		IsActive:   true,
		Privileges: adminRole.Privileges,
	}
	admin.Stamp("system")

	if err := admin.SetPassword(cfg.SeedAdminPassword); err != nil {
		log.Warn().Err(err).Msg("hash admin password")
		return
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Warn().Err(err).Msg("create admin user")
		return
	}
	log.Info().Str("email", admin.Email).Msg("admin user created")
}
