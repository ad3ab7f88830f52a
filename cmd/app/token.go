package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/pkg/jwthelper"
	"github.com/onedrop-app/onedrop-api/internal/repository"
	"github.com/onedrop-app/onedrop-api/internal/repository/dao"
)

func tokenCommand() *cobra.Command {
	var (
		role string
		id   uint
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for an existing participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := domain.ParseRole(role)
			if err != nil {
				return err
			}
			if r == domain.RoleSystem {
				return fmt.Errorf("%w: the system role cannot hold a token", domain.ErrInvalidInput)
			}
			if id == 0 {
				return fmt.Errorf("%w: --id is required", domain.ErrInvalidInput)
			}

			conf, err := bootstrap()
			if err != nil {
				return err
			}

			gdb, err := openDatabase(conf)
			if err != nil {
				return err
			}
			defer closeDatabase(gdb)

			actor := domain.Actor{Role: r, ID: id}
			participants := repository.NewParticipantRepository(dao.NewParticipantDAO(gdb))
			if err = participantExists(cmd.Context(), participants, actor); err != nil {
				return err
			}

			token, err := jwthelper.GenerateToken([]byte(conf.API.JWTSigningKey), actor, conf.API.TokenTTL)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "hospital, donor or beneficiary")
	cmd.Flags().UintVar(&id, "id", 0, "participant id")

	return cmd
}

func participantExists(ctx context.Context, participants *repository.ParticipantRepository, actor domain.Actor) error {
	var err error
	switch actor.Role {
	case domain.RoleHospital:
		_, err = participants.FindHospitalByID(ctx, actor.ID)
	case domain.RoleDonor:
		_, err = participants.FindDonorByID(ctx, actor.ID)
	case domain.RoleBeneficiary:
		_, err = participants.FindBeneficiaryByID(ctx, actor.ID)
	default:
		return fmt.Errorf("%w: role %q", domain.ErrInvalidInput, actor.Role)
	}
	if err != nil {
		return fmt.Errorf("%s %d -> %w", actor.Role, actor.ID, err)
	}

	return nil
}
