package cmd

import (
	"fmt"

	"github.com/jahua/prism-portfolio/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var generateQueriesDir string
var columnReport bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Creates or updates the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(appConfig)
		if err != nil {
			return err
		}

		if columnReport {
			report, err := models.ColumnReport(db)
			if err != nil {
				return err
			}
			for _, drift := range report {
				if len(drift.Unmapped) == 0 {
					log.Info().Str("table", drift.Table).Msg("All columns mapped")
					continue
				}
				log.Warn().Str("table", drift.Table).Strs("unmapped", drift.Unmapped).Msg("Columns without a model field")
			}
			return nil
		}

		if err := models.Migrate(db); err != nil {
			return err
		}
		log.Info().Msg("Schema migrated")

		if generateQueriesDir != "" {
			models.GenerateQueries(db, generateQueriesDir)
			log.Info().Str("dir", generateQueriesDir).Msg("Query helpers generated")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&generateQueriesDir, "generate-queries", "", "also write gorm/gen query helpers into this directory")
	migrateCmd.Flags().BoolVar(&columnReport, "report", false, fmt.Sprintf("only report columns not mapped by any of the %d models", len(models.All())))
	rootCmd.AddCommand(migrateCmd)
}
