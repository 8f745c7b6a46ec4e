package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"reddit-persona/config"
	"reddit-persona/persona"
	"reddit-persona/reddit"
	"reddit-persona/report"
	"reddit-persona/sentiment"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	outDir     string
	scorer     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "reddit-persona [profile-url]",
		Short: "Build a persona report from a Reddit user's recent posts and comments",
		Long: `Fetches a Reddit user's most recent posts and comments, scores their
sentiment, looks for self-descriptive sentences and writes a summary to
<username>_persona.txt.

When no profile URL is given it is read from standard input.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", config.GetConfigPath(), "path to YAML config file")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "directory to write the report to (overrides output_dir)")
	cmd.Flags().StringVar(&opts.scorer, "scorer", "", "sentiment scorer: vader or gemini (overrides scorer)")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", opts.configPath, err)
	}
	if opts.outDir != "" {
		cfg.OutputDir = opts.outDir
	}
	if opts.scorer != "" {
		cfg.Scorer = opts.scorer
	}

	setupLogging(cfg.LogLevel)
	slog.Info("config loaded", "path", opts.configPath, "scorer", cfg.Scorer, "timezone", cfg.Timezone)

	profileURL := ""
	if len(args) == 1 {
		profileURL = args[0]
	} else {
		profileURL, err = promptProfileURL(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	username := reddit.ExtractUsername(profileURL)
	if username == "" {
		return fmt.Errorf("no username in profile URL %q", profileURL)
	}

	scorer, err := newScorer(cfg)
	if err != nil {
		return err
	}

	client := reddit.NewClient(
		reddit.Credentials{
			ClientID:     cfg.RedditClientID,
			ClientSecret: cfg.RedditClientSecret,
			UserAgent:    cfg.RedditUserAgent,
		},
		reddit.WithTimeout(cfg.FetchTimeout()),
		reddit.WithPageSize(cfg.PageSize),
	)

	analyzer := persona.NewAnalyzer(
		&redditSource{client},
		scorer,
		persona.WithPostLimit(cfg.PostLimit),
		persona.WithCommentLimit(cfg.CommentLimit),
		persona.WithLocation(cfg.Location()),
	)

	path, err := generate(ctx, analyzer, username, cfg.OutputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n✅ Persona file generated: %s\n", path)
	return nil
}

// generate analyzes username and writes its report. Nothing is written when
// the analysis fails.
func generate(ctx context.Context, analyzer *persona.Analyzer, username, outDir string) (string, error) {
	summary, err := analyzer.Analyze(ctx, username)
	if err != nil {
		attrs := []any{"username", username, "error", err}
		if kind := reddit.KindOf(err); kind != "" {
			attrs = append(attrs, "kind", kind)
		}
		slog.Error("analysis failed", attrs...)
		return "", err
	}

	return report.WriteFile(outDir, username, report.Render(summary))
}

func promptProfileURL(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter Reddit user profile URL: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read profile URL: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newScorer(cfg *config.Config) (persona.Scorer, error) {
	switch cfg.Scorer {
	case config.ScorerVader:
		return sentiment.NewVader(), nil
	case config.ScorerGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini_api_key is required for the gemini scorer")
		}
		return sentiment.NewGemini(
			cfg.GeminiAPIKey,
			sentiment.WithModel(cfg.GeminiModel),
			sentiment.WithTimeout(cfg.FetchTimeout()),
		), nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", cfg.Scorer)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}

// redditSource adapts the Reddit client to persona.ContentSource.
type redditSource struct {
	client *reddit.Client
}

func (r *redditSource) Posts(ctx context.Context, username string, limit int) ([]persona.Item, error) {
	subs, err := r.client.Submissions(ctx, username, limit)
	if err != nil {
		return nil, err
	}
	items := make([]persona.Item, len(subs))
	for i, s := range subs {
		items[i] = persona.Item{
			Kind:      persona.KindPost,
			Body:      s.Title + " " + s.Selftext,
			URL:       s.URL(),
			Community: s.Subreddit,
			CreatedAt: s.CreatedAt(),
		}
	}
	return items, nil
}

func (r *redditSource) Comments(ctx context.Context, username string, limit int) ([]persona.Item, error) {
	comments, err := r.client.Comments(ctx, username, limit)
	if err != nil {
		return nil, err
	}
	items := make([]persona.Item, len(comments))
	for i, c := range comments {
		items[i] = persona.Item{
			Kind:      persona.KindComment,
			Body:      c.Body,
			URL:       c.URL(),
			Community: c.Subreddit,
			CreatedAt: c.CreatedAt(),
		}
	}
	return items, nil
}
