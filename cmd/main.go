package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"detecterreur/internal/customdict"
	"detecterreur/internal/detector"
	"detecterreur/internal/editdist"
	"detecterreur/internal/lexicon"
	"detecterreur/pkg/options"
)

type config struct {
	HTTPAddr        string `koanf:"http_addr"`
	LexiconPath     string `koanf:"lexicon_path"`
	RedisAddr       string `koanf:"redis_addr"`
	RedisPassword   string `koanf:"redis_password"`
	RedisDB         int    `koanf:"redis_db"`
	MaxEditDistance int    `koanf:"max_edit_distance"`
}

// loadConfig reads DETECTERREUR_* environment variables over the
// defaults: DETECTERREUR_HTTP_ADDR -> http_addr, etc.
func loadConfig() (config, error) {
	cfg := config{
		HTTPAddr:        ":8080",
		LexiconPath:     "fr.lex",
		RedisAddr:       "localhost:6379",
		MaxEditDistance: 2,
	}
	k := koanf.New(".")
	if err := k.Load(env.Provider("DETECTERREUR_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DETECTERREUR_"))
	}), nil); err != nil {
		return cfg, fmt.Errorf("load environment: %w", err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "detecterreur",
	Short: "Detection and correction of learner-French errors",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(correctCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP correction service",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		dict := customdict.New(client)

		lex, err := lexicon.Open(cfg.LexiconPath, dict, logger)
		if err != nil {
			return err
		}
		defer lex.Close()

		eng := editdist.NewEngine(lex.Words(), lex.Freq,
			options.WithMaxEditDistance(cfg.MaxEditDistance))
		orch := detector.New(lex, eng, logger)

		mux := http.NewServeMux()

		mux.HandleFunc("/api/v1/correct", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.NotFound(w, r)
				return
			}
			text, ok := decodeText(w, r)
			if !ok {
				return
			}
			writeJSON(w, http.StatusOK, orch.GetReport(text))
		})

		mux.HandleFunc("/api/v1/suggestions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.NotFound(w, r)
				return
			}
			text, ok := decodeText(w, r)
			if !ok {
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"original":    text,
				"suggestions": orch.GetSuggestions(text),
			})
		})

		mux.HandleFunc("/api/v1/personal-word", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.NotFound(w, r)
				return
			}
			var req struct {
				Word string `json:"word"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
				return
			}
			if err := lex.AddPersonal(r.Context(), req.Word); err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
		})

		mux.HandleFunc("/api/v1/personal-word/", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				http.NotFound(w, r)
				return
			}
			word := strings.TrimPrefix(r.URL.Path, "/api/v1/personal-word/")
			if word == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "word is required"})
				return
			}
			if err := lex.RemovePersonal(r.Context(), word); err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		return http.ListenAndServe(cfg.HTTPAddr, mux)
	},
}

var correctCmd = &cobra.Command{
	Use:   "correct [text]",
	Short: "Correct a sentence from the argument or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		text := ""
		if len(args) == 1 && args[0] != "-" {
			text = args[0]
		} else {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			text = strings.TrimRight(string(raw), "\n")
		}

		// One-shot run: no Redis, no personal lexicon.
		lex, err := lexicon.Open(cfg.LexiconPath, nil, zap.NewNop())
		if err != nil {
			return err
		}
		defer lex.Close()
		eng := editdist.NewEngine(lex.Words(), lex.Freq,
			options.WithMaxEditDistance(cfg.MaxEditDistance))
		orch := detector.New(lex, eng, nil)

		fmt.Fprintln(cmd.OutOrStdout(), orch.Correct(text))
		return nil
	},
}

func decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return "", false
	}
	return req.Text, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
