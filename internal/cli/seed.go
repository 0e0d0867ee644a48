package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"foodgram-service/internal/domain/domainerr"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/infrastructure/logger"
)

// Fixtures is the seed file layout. Rows that already exist (by username,
// tag slug or ingredient name) are left untouched.
type Fixtures struct {
	Users []struct {
		Email     string `yaml:"email"`
		Username  string `yaml:"username"`
		FirstName string `yaml:"first_name"`
		LastName  string `yaml:"last_name"`
	} `yaml:"users"`
	Tags []struct {
		Name  string `yaml:"name"`
		Color string `yaml:"color"`
		Slug  string `yaml:"slug"`
	} `yaml:"tags"`
	Ingredients []struct {
		Name            string `yaml:"name"`
		MeasurementUnit string `yaml:"measurement_unit"`
	} `yaml:"ingredients"`
}

type seedReport struct {
	Created int
	Skipped int
}

var seedCmd = &cobra.Command{
	Use:   "seed <fixtures.yaml>",
	Short: "Load users, tags and ingredients from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read fixtures: %w", err)
		}
		var fixtures Fixtures
		if err := yaml.Unmarshal(raw, &fixtures); err != nil {
			return fmt.Errorf("parse fixtures: %w", err)
		}

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
		if err := a.migrate(); err != nil {
			return err
		}

		report, err := seedFixtures(cmd.Context(), a.repos, &fixtures, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d rows, skipped %d existing\n", report.Created, report.Skipped)
		return nil
	},
}

func seedFixtures(ctx context.Context, r repos, fixtures *Fixtures, log *logger.Logger) (seedReport, error) {
	var report seedReport

	for _, u := range fixtures.Users {
		user := entities.NewUser(u.Email, u.Username, u.FirstName, u.LastName)
		if err := user.Validate(); err != nil {
			return report, fmt.Errorf("user %q: %w", u.Username, err)
		}
		created, err := createUnlessExists(
			func() error { _, err := r.users.FindByUsername(ctx, user.Username); return err },
			func() error { _, err := r.users.Create(ctx, user); return err },
		)
		if err != nil {
			return report, fmt.Errorf("user %q: %w", u.Username, err)
		}
		report.count(created)
	}

	for _, t := range fixtures.Tags {
		tag, err := entities.NewTag(t.Name, t.Color, t.Slug)
		if err != nil {
			return report, fmt.Errorf("tag %q: %w", t.Slug, err)
		}
		created, err := createUnlessExists(
			func() error { _, err := r.tags.FindBySlug(ctx, tag.Slug); return err },
			func() error { _, err := r.tags.Create(ctx, tag); return err },
		)
		if err != nil {
			return report, fmt.Errorf("tag %q: %w", t.Slug, err)
		}
		report.count(created)
	}

	for _, i := range fixtures.Ingredients {
		ingredient, err := entities.NewIngredient(i.Name, i.MeasurementUnit)
		if err != nil {
			return report, fmt.Errorf("ingredient %q: %w", i.Name, err)
		}
		created, err := createUnlessExists(
			func() error { _, err := r.ingredients.FindByName(ctx, ingredient.Name); return err },
			func() error { _, err := r.ingredients.Create(ctx, ingredient); return err },
		)
		if err != nil {
			return report, fmt.Errorf("ingredient %q: %w", i.Name, err)
		}
		report.count(created)
	}

	log.Info("fixtures loaded", "created", report.Created, "skipped", report.Skipped)
	return report, nil
}

func createUnlessExists(find, create func() error) (bool, error) {
	err := find()
	if err == nil {
		return false, nil
	}
	if !domainerr.Is(err, domainerr.KindNotFound) {
		return false, err
	}
	if err := create(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *seedReport) count(created bool) {
	if created {
		r.Created++
	} else {
		r.Skipped++
	}
}
