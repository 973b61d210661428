package main

import (
	"encoding/json"
	"fmt"

	"github.com/shorechef/backend/config"
	"github.com/shorechef/backend/internal/app"
	"github.com/shorechef/backend/internal/corpus"
	"github.com/shorechef/backend/internal/database"
	"github.com/shorechef/backend/internal/logging"
	"github.com/shorechef/backend/internal/recipe"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var recipeFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed_recipes",
		Short: "Seed the recipe store from the text corpus",
		Long: `Parse the recipe corpus and upsert every titled recipe into the store.

Nothing is written when the store already holds recipes.

Examples:
  seed_recipes
  seed_recipes --file s3://bucket/recipes.txt
  seed_recipes parse --file recipes.txt`,
		SilenceUsage: true,
		RunE:         runSeed,
	}
	cmd.PersistentFlags().StringVar(&recipeFile, "file", "", "Corpus path or s3://bucket/key (default RECIPE_FILE)")
	cmd.AddCommand(newParseCmd())
	return cmd
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse",
		Short: "Print the parsed corpus as JSON without touching the store",
		RunE:  runParse,
	}
}

func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if recipeFile != "" {
		cfg.RecipeFile = recipeFile
	}
	log, err := logging.NewWithOutput(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	client, err := app.GenAI(ctx, cfg, log)
	if err != nil {
		return err
	}
	docs, db, err := app.OpenStore(cfg, app.Embedder(client, cfg, log), log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	src, err := app.CorpusSource(ctx, cfg)
	if err != nil {
		return err
	}
	res, err := corpus.NewLoader(docs, src, log).LoadIfEmpty(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case res.AlreadySeeded:
		fmt.Fprintf(out, "Store already holds %d recipes; nothing to do\n", res.Existing)
	case res.Missing:
		return fmt.Errorf("corpus %s not found", src)
	default:
		fmt.Fprintf(out, "Loaded %d recipes from %d blocks (%d without a title)\n",
			res.Loaded, res.Stats.Blocks, res.Stats.Untitled)
	}
	return nil
}

func runParse(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	src, err := app.CorpusSource(ctx, cfg)
	if err != nil {
		return err
	}
	r, err := src.Open(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	entries, stats, err := corpus.ParseCorpus(r, log)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"blocks": stats.Blocks, "untitled": stats.Untitled}).Info("Parsed corpus")

	records := make([]recipe.Record, len(entries))
	for i, e := range entries {
		records[i] = e.Record
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
