package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/readquiz/internal/app"
	"github.com/abhisek/readquiz/internal/loader"
	"github.com/abhisek/readquiz/internal/quiz"
	"github.com/abhisek/readquiz/internal/quizgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate <article.txt>",
	Short: "Generate a quiz from a plain-text article",
	Long: "Generate a multiple-choice quiz from an article with the configured LLM and\n" +
		"store it. With --remote the article is posted to a readquiz API server instead.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		summary, _ := cmd.Flags().GetString("summary")
		numQuestions, _ := cmd.Flags().GetInt("questions")
		remote, _ := cmd.Flags().GetBool("remote")
		apiURL, _ := cmd.Flags().GetString("api")
		take, _ := cmd.Flags().GetBool("take")

		article, err := loader.ReadArticle(args[0])
		if err != nil {
			return err
		}
		if title != "" {
			article.Title = title
		}
		article.Summary = summary

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		var set *quiz.QuestionSet
		if remote {
			articleID := trimExt(article.ID)
			set, err = loader.NewRemoteLoader(apiURL).Generate(cmd.Context(), articleID, &article)
			if err != nil {
				return err
			}
			if err := st.QuizSetRepo().Save(cmd.Context(), set, "remote"); err != nil {
				return fmt.Errorf("save quiz: %w", err)
			}
		} else {
			cfg := quizgen.DefaultConfig()
			if numQuestions > 0 {
				cfg.NumQuestions = numQuestions
			}
			gen, err := newGenerator(cmd.Context(), st, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Generating quiz from %s...\n", args[0])
			set, err = gen.Generate(cmd.Context(), article)
			if err != nil {
				return err
			}
		}

		fmt.Printf("%s\t%s\t%d questions\n", set.ID, set.Title, set.Len())

		if take {
			return app.Run(app.Options{
				Sets:   st.QuizSetRepo(),
				Events: st.EventRepo(),
				Set:    set,
			})
		}
		return nil
	},
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

func init() {
	generateCmd.Flags().String("title", "", "Article title (default: first \"# \" line or file name)")
	generateCmd.Flags().String("summary", "", "Article summary to generate from instead of the text")
	generateCmd.Flags().IntP("questions", "q", 0, "Number of questions (default 5)")
	generateCmd.Flags().Bool("remote", false, "Generate on a readquiz API server")
	generateCmd.Flags().String("api", "", "API base URL for --remote")
	generateCmd.Flags().Bool("take", false, "Take the quiz right after generating it")
}
