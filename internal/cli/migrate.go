package cli

import "github.com/spf13/cobra"

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		a, err := openApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.close()
		return a.migrate()
	},
}
