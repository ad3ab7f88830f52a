package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onedrop-app/onedrop-api/internal/repository/dao"
)

func migrateCommand() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := bootstrap()
			if err != nil {
				return err
			}

			if reset {
				gdb, err := openDatabase(conf)
				if err != nil {
					return err
				}
				defer closeDatabase(gdb)

				if err = dao.DropTables(gdb); err != nil {
					return fmt.Errorf("dao.DropTables -> %w", err)
				}
				if err = dao.InitTables(gdb); err != nil {
					return fmt.Errorf("dao.InitTables -> %w", err)
				}
				zap.L().Info("schema recreated")
				return nil
			}

			gdb, err := openDatabase(conf)
			if err != nil {
				return err
			}
			closeDatabase(gdb)

			zap.L().Info("schema up to date")
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop every table before migrating (destroys data)")

	return cmd
}
