package app

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/metrics"
	"github.com/onedrop-app/onedrop-api/internal/repository"
	"github.com/onedrop-app/onedrop-api/internal/repository/dao"
	"github.com/onedrop-app/onedrop-api/internal/service"
	"github.com/onedrop-app/onedrop-api/internal/worker"
)

func sweepCommand() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Finalize every active campaign that ended before a date, once",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if asOf != "" {
				parsed, err := time.Parse(domain.DateLayout, asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
				day = parsed
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

			m := metrics.New(prometheus.NewRegistry())
			svc := service.NewCampaignService(
				repository.NewCampaignRepository(dao.NewCampaignDAO(gdb)),
				repository.NewParticipantRepository(dao.NewParticipantDAO(gdb)),
				m,
			)

			n, err := worker.NewSweeper(svc, conf.Sweep.Interval, m).SweepOnce(cmd.Context(), day)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "finalized %d campaign(s)\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "cut-off date in YYYY-MM-DD (default today)")

	return cmd
}
