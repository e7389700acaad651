package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/readquiz/internal/session"
	"github.com/abhisek/readquiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show submitted quiz rounds",
	Long:  "Show submitted quiz rounds, newest first. With --session, show every event of one session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		setID, _ := cmd.Flags().GetString("set")
		sessionID, _ := cmd.Flags().GetString("session")
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		filter := store.SessionEventFilter{
			SessionID: sessionID,
			SetID:     setID,
			QueryOpts: store.QueryOpts{Limit: limit},
		}
		if sessionID == "" {
			filter.Action = store.ActionSubmit
		}

		events, err := st.EventRepo().QuerySessionEvents(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No quiz history found.")
			return nil
		}

		if sessionID != "" {
			printSessionEvents(events)
			return nil
		}

		fmt.Printf("%-19s  %-36s  %-36s  %5s  %7s  %4s\n",
			"Timestamp", "Session", "Set", "Round", "Score", "%")
		fmt.Println(strings.Repeat("─", 118))
		for _, e := range events {
			fmt.Printf("%-19s  %-36s  %-36s  %5d  %7s  %3d%%\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.SessionID,
				truncate(e.SetID, 36),
				e.Round,
				fmt.Sprintf("%d/%d", e.Score, e.Total),
				session.Percentage(e.Score, e.Total),
			)
		}
		return nil
	},
}

// printSessionEvents prints one session's events in the order they happened.
func printSessionEvents(events []store.SessionEvent) {
	fmt.Printf("%-8s  %-19s  %5s  %-8s  %s\n", "Seq", "Timestamp", "Round", "Action", "Detail")
	fmt.Println(strings.Repeat("─", 72))
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		fmt.Printf("%-8d  %-19s  %5d  %-8s  %s\n",
			e.Sequence, e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Round, e.Action, eventDetail(e))
	}
}

func eventDetail(e store.SessionEvent) string {
	switch e.Action {
	case store.ActionStart:
		return fmt.Sprintf("set %s, %d questions", e.SetID, e.Total)
	case store.ActionAnswer:
		return fmt.Sprintf("%s -> option %d", e.QuestionID, e.Option+1)
	case store.ActionNavigate:
		return fmt.Sprintf("question %d", e.QuestionIndex+1)
	case store.ActionSubmit:
		return fmt.Sprintf("%d/%d (%d%%)", e.Score, e.Total, session.Percentage(e.Score, e.Total))
	case store.ActionReset:
		return fmt.Sprintf("starts round %d", e.Round)
	}
	return ""
}

func init() {
	historyCmd.Flags().String("set", "", "Only rounds of this question set")
	historyCmd.Flags().String("session", "", "Show all events of one session")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of rows to show")
}
