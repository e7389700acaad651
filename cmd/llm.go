package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/readquiz/internal/llm"
	"github.com/abhisek/readquiz/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged quiz generation calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")
		article, _ := cmd.Flags().GetString("article")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		f := llmFilter{purpose: purpose, articleID: article, failedOnly: failed, limit: limit}
		opts := store.QueryOpts{Limit: limit}
		if f.filtering() {
			opts.Limit = 0
		}
		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		events = f.apply(events)
		if len(events) == 0 {
			fmt.Println("No generation calls logged.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-10s  %-26s  %11s  %7s  %s\n",
			"ID", "Timestamp", "Provider", "Model", "Tokens", "Ms", "Result")
		fmt.Println(strings.Repeat("─", 104))
		for _, e := range events {
			result := "ok"
			if !e.Success {
				result = truncate(e.ErrorMessage, 28)
			}
			fmt.Printf("%-5d  %-19s  %-10s  %-26s  %11s  %7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format(timeLayout),
				e.Provider,
				truncate(e.Model, 26),
				fmt.Sprintf("%d/%d", e.InputTokens, e.OutputTokens),
				e.LatencyMs,
				result,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id|latest>",
	Short: "Show the prompt and model output of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := findLLMEvent(cmd, st.EventRepo(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Call %d at %s\n", e.ID, e.Timestamp.Local().Format(timeLayout))
		fmt.Printf("  provider  %s (%s)\n", e.Provider, e.Model)
		fmt.Printf("  purpose   %s\n", e.Purpose)
		if e.ArticleID != "" {
			fmt.Printf("  article   %s (attempt %d)\n", e.ArticleID, e.Attempt)
		}
		fmt.Printf("  tokens    %d in, %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Printf("  latency   %dms\n", e.LatencyMs)
		if e.Success {
			fmt.Println("  result    ok")
		} else {
			fmt.Printf("  result    failed: %s\n", e.ErrorMessage)
		}

		printSection("Prompt", e.RequestBody)
		printSection("Output", indentJSON(e.ResponseBody))
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		byPurpose, err := st.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No generation calls logged.")
			return nil
		}
		printUsage(byPurpose)

		byModel, err := st.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) > 0 {
			fmt.Println()
			printCost(byModel)
		}
		return nil
	},
}

// findLLMEvent resolves an event id, or "latest" for the newest call.
func findLLMEvent(cmd *cobra.Command, repo store.EventRepo, ref string) (*store.LLMRequestEvent, error) {
	if ref == "latest" {
		events, err := repo.QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: 1})
		if err != nil {
			return nil, fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			return nil, fmt.Errorf("no generation calls logged")
		}
		return &events[0], nil
	}

	id, err := strconv.Atoi(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid event id %q", ref)
	}
	e, err := repo.GetLLMEvent(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if e == nil {
		return nil, fmt.Errorf("event %d not found", id)
	}
	return e, nil
}

func printSection(title, body string) {
	fmt.Printf("\n── %s %s\n", title, strings.Repeat("─", 56-len(title)))
	if body == "" {
		fmt.Println("(empty)")
		return
	}
	fmt.Println(strings.TrimRight(body, "\n"))
}

// indentJSON pretty-prints body when it is JSON and returns it unchanged
// otherwise. Rejected model output is often not.
func indentJSON(body string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}

func printUsage(rows []store.LLMUsage) {
	fmt.Printf("%-16s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg Ms")
	fmt.Println(strings.Repeat("─", 58))

	var calls, in, out int
	for _, u := range rows {
		fmt.Printf("%-16s  %6d  %10d  %10d  %8d\n",
			u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	fmt.Println(strings.Repeat("─", 58))
	fmt.Printf("%-16s  %6d  %10d  %10d\n", "all", calls, in, out)
}

// printCost prices each model's usage. Models without a known price are
// listed and left out of the total.
func printCost(rows []store.LLMUsage) {
	fmt.Printf("%-32s  %6s  %10s\n", "Model", "Calls", "Cost (USD)")
	fmt.Println(strings.Repeat("─", 52))

	var total float64
	var unpriced []string
	for _, u := range rows {
		price := llm.LookupCost(u.Model)
		if price == nil {
			unpriced = append(unpriced, u.Model)
			fmt.Printf("%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, "n/a")
			continue
		}
		c := price.Cost(u.InputTokens, u.OutputTokens)
		total += c
		fmt.Printf("%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, formatUSD(c))
	}
	fmt.Println(strings.Repeat("─", 52))
	fmt.Printf("%-32s  %6s  %10s\n", "all", "", formatUSD(total))
	if len(unpriced) > 0 {
		fmt.Printf("\nNo price known for %s.\n", strings.Join(unpriced, ", "))
	}
}

// llmFilter narrows logged calls client side. The event query only
// supports a row limit.
type llmFilter struct {
	purpose    string
	articleID  string
	failedOnly bool
	limit      int
}

func (f llmFilter) filtering() bool {
	return f.purpose != "" || f.articleID != "" || f.failedOnly
}

func (f llmFilter) apply(events []store.LLMRequestEvent) []store.LLMRequestEvent {
	if !f.filtering() {
		return events
	}
	var out []store.LLMRequestEvent
	for _, e := range events {
		if f.purpose != "" && e.Purpose != f.purpose {
			continue
		}
		if f.articleID != "" && e.ArticleID != f.articleID {
			continue
		}
		if f.failedOnly && e.Success {
			continue
		}
		out = append(out, e)
		if f.limit > 0 && len(out) == f.limit {
			break
		}
	}
	return out
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func formatUSD(usd float64) string {
	if usd > 0 && usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only calls with this purpose (e.g. quiz-gen)")
	llmListCmd.Flags().String("article", "", "Only calls made for this article id")
	llmListCmd.Flags().Bool("failed", false, "Only failed calls")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
