package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/readquiz/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored quizzes over HTTP",
	Long: "Serve stored quizzes as JSON (GET /api/quiz/{id}) and generate new ones from\n" +
		"posted articles (POST /api/quiz/{article_id}). Prometheus metrics are on /metrics.\n\n" +
		"Settings come from --config, READQUIZ_SERVER_* environment variables and flags.",
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")

		v := viper.New()
		for key, flag := range map[string]string{
			"server.addr":                "addr",
			"server.generate_per_minute": "rate",
			"server.generate_burst":      "burst",
		} {
			if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return err
				}
			}
		}
		cfg, err := api.LoadConfig(v, configFile)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := api.New(cfg, st.QuizSetRepo(), optionalGenerator(cmd.Context(), st))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s\n", cfg.Addr)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("config", "", "Config file (YAML, JSON or TOML)")
	serveCmd.Flags().String("addr", "", "Listen address (default \":8080\")")
	serveCmd.Flags().Float64("rate", 0, "Generation requests per minute (default 6, 0 in config disables)")
	serveCmd.Flags().Int("burst", 0, "Generation burst size (default 2)")
}
