package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/readquiz/internal/quiz"
	"github.com/abhisek/readquiz/internal/store"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Manage stored question sets",
}

var setsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored question sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sets, err := st.QuizSetRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sets: %w", err)
		}
		if len(sets) == 0 {
			fmt.Println("No question sets stored.")
			return nil
		}

		fmt.Printf("%-36s  %-32s  %4s  %-6s  %s\n", "ID", "Title", "Qs", "Source", "Created")
		fmt.Println(strings.Repeat("─", 100))
		for _, s := range sets {
			fmt.Printf("%-36s  %-32s  %4d  %-6s  %s\n",
				s.ID,
				truncate(s.Title, 32),
				s.Questions,
				s.Source,
				s.CreatedAt.Local().Format("2006-01-02 15:04"),
			)
		}
		return nil
	},
}

var setsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a question set with its answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		set, err := getSet(cmd, st, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", set.Title, set.ID)
		if set.ArticleID != "" {
			fmt.Printf("Article: %s\n", set.ArticleID)
		}
		for i, q := range set.Questions {
			fmt.Printf("\n%d. %s\n", i+1, q.Prompt)
			for j, opt := range q.Options {
				mark := " "
				if j == q.CorrectIndex {
					mark = "*"
				}
				fmt.Printf("  %s %s) %s\n", mark, quiz.OptionLabel(j), opt)
			}
			if q.Explanation != "" {
				fmt.Printf("     %s\n", q.Explanation)
			}
		}
		return nil
	},
}

var setsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a question-set file (YAML or JSON)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := quiz.ReadSetFile(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := saveSet(cmd, st.QuizSetRepo(), set, "file"); err != nil {
			return err
		}
		fmt.Println(set.ID)
		return nil
	},
}

var setsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a stored question set as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		set, err := getSet(cmd, st, args[0])
		if err != nil {
			return err
		}
		data, err := quiz.MarshalSet(set)
		if err != nil {
			return err
		}

		if out == "" || out == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		return nil
	},
}

var setsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored question set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		err = st.QuizSetRepo().Delete(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("question set %q not found", args[0])
		}
		return err
	},
}

func getSet(cmd *cobra.Command, st *store.Store, id string) (*quiz.QuestionSet, error) {
	set, err := st.QuizSetRepo().Get(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("question set %q not found", id)
	}
	return set, err
}

func newSetID() string {
	return uuid.NewString()
}

func init() {
	setsExportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")

	setsCmd.AddCommand(setsListCmd)
	setsCmd.AddCommand(setsShowCmd)
	setsCmd.AddCommand(setsImportCmd)
	setsCmd.AddCommand(setsExportCmd)
	setsCmd.AddCommand(setsDeleteCmd)
}
