package cmd

import (
	"context"

	"github.com/jahua/prism-portfolio/database"
	"github.com/jahua/prism-portfolio/models"
	"github.com/jahua/prism-portfolio/seed"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var seedFile string
var seedPostsDir string
var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Loads the profile, blogs and projects from seed content",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := &seed.Document{}
		if seedFile != "" {
			loaded, err := seed.LoadFile(seedFile)
			if err != nil {
				return err
			}
			doc = loaded
		}
		if seedPostsDir != "" {
			posts, err := seed.LoadPosts(seedPostsDir)
			if err != nil {
				return err
			}
			doc.Blogs = append(doc.Blogs, posts...)
		}

		db, err := openDatabase(appConfig)
		if err != nil {
			return err
		}
		if err := models.Migrate(db); err != nil {
			return err
		}

		store := database.New(db)
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		result, err := seed.Run(ctx, seed.Target{
			Profiles: store.ProfileRepo(),
			Blogs:    store.BlogRepo(),
			Projects: store.ProjectRepo(),
		}, doc, seed.Options{Reset: seedReset})
		if err != nil {
			return err
		}

		log.Info().
			Bool("profile", result.Profile).
			Int("blogsCreated", result.BlogsCreated).
			Int("blogsSkipped", result.BlogsSkipped).
			Int("projectsCreated", result.ProjectsCreated).
			Int("projectsSkipped", result.ProjectsSkipped).
			Msg("Seed complete")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "content/seed.yaml", "YAML file with profile, blogs and projects")
	seedCmd.Flags().StringVar(&seedPostsDir, "posts", "", "directory of Markdown posts with front matter")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete the existing profile, blogs and projects first")
	rootCmd.AddCommand(seedCmd)
}
