package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlab.com/minerex-platform/admin_api/config"
	"gitlab.com/minerex-platform/admin_api/queries"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig(viper.GetViper())
		if err := queries.RunMigrations(cfg.DatabaseCluster.Writer); err != nil {
			log.Fatal().Err(err).Str("section", "migrate").Msg("Unable to execute migrations")
		}
		log.Info().Str("section", "migrate").Msg("Migrations executed successfully")
	},
}
