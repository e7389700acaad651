package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/readquiz/internal/app"
	"github.com/abhisek/readquiz/internal/loader"
	"github.com/abhisek/readquiz/internal/quiz"
	"github.com/abhisek/readquiz/internal/store"
)

var takeCmd = &cobra.Command{
	Use:   "take [set-id]",
	Short: "Take a quiz",
	Long: "Take a stored quiz by id, a question-set file with --file, or a quiz served\n" +
		"by a readquiz API with --remote.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		remote, _ := cmd.Flags().GetString("remote")
		apiURL, _ := cmd.Flags().GetString("api")
		save, _ := cmd.Flags().GetBool("save")

		sources := 0
		for _, set := range []bool{len(args) == 1, file != "", remote != ""} {
			if set {
				sources++
			}
		}
		if sources != 1 {
			return errors.New("specify exactly one of <set-id>, --file or --remote")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		var (
			l      loader.Loader
			ref    string
			source string
		)
		switch {
		case file != "":
			l, ref, source = loader.FileLoader{}, file, "file"
		case remote != "":
			l, ref, source = loader.NewRemoteLoader(apiURL), remote, "remote"
		default:
			l, ref = &loader.StoreLoader{Repo: st.QuizSetRepo()}, args[0]
		}

		set, err := l.Load(cmd.Context(), ref)
		if errors.Is(err, loader.ErrNotFound) {
			return fmt.Errorf("quiz %q not found", ref)
		}
		if err != nil {
			return err
		}

		if save && source != "" {
			if err := saveSet(cmd, st.QuizSetRepo(), set, source); err != nil {
				return err
			}
		}

		return app.Run(app.Options{
			Sets:   st.QuizSetRepo(),
			Events: st.EventRepo(),
			Set:    set,
		})
	},
}

// saveSet stores set under source, assigning an id when it has none.
func saveSet(cmd *cobra.Command, repo store.QuizSetRepo, set *quiz.QuestionSet, source string) error {
	if set.ID == "" {
		set.ID = newSetID()
	}
	if err := repo.Save(cmd.Context(), set, source); err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved quiz %s\n", set.ID)
	return nil
}

func init() {
	takeCmd.Flags().StringP("file", "f", "", "Question-set file (YAML or JSON)")
	takeCmd.Flags().String("remote", "", "Quiz id on a readquiz API server")
	takeCmd.Flags().String("api", "", "API base URL for --remote (default $READQUIZ_API_URL or "+loader.DefaultAPIURL+")")
	takeCmd.Flags().Bool("save", false, "Save a --file or --remote quiz into the local database")
}
