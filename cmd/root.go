package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/readquiz/internal/app"
	"github.com/abhisek/readquiz/internal/llm"
	"github.com/abhisek/readquiz/internal/loader"
	"github.com/abhisek/readquiz/internal/quizgen"
	"github.com/abhisek/readquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "readquiz",
	Short: "Reading comprehension quizzes in the terminal",
	Long: "readquiz turns articles into multiple-choice quizzes and lets you take them,\n" +
		"score them and review the answers from the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		return app.Run(app.Options{
			Sets:      st.QuizSetRepo(),
			Events:    st.EventRepo(),
			Generator: optionalGenerator(cmd.Context(), st),
		})
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides READQUIZ_DB env var)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then READQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newGenerator builds an LLM-backed loader that saves into st. LLM calls
// are logged to the store's event repo.
func newGenerator(ctx context.Context, st *store.Store, cfg quizgen.Config) (*loader.LLMLoader, error) {
	llmCfg, err := llm.Resolve()
	if err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
	if err != nil {
		return nil, err
	}
	return &loader.LLMLoader{
		Generator: quizgen.New(provider, cfg),
		Repo:      st.QuizSetRepo(),
	}, nil
}

// optionalGenerator is newGenerator with the default config that only warns
// when no LLM is configured.
func optionalGenerator(ctx context.Context, st *store.Store) *loader.LLMLoader {
	gen, err := newGenerator(ctx, st, quizgen.DefaultConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation will be unavailable.")
		return nil
	}
	return gen
}
