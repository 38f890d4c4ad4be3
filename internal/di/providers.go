package di

import (
	"log/slog"
	"os"

	"leetcode-export/internal/adapter/htmltext"
	"leetcode-export/internal/adapter/jsonfile"
	"leetcode-export/internal/adapter/leetcode"
	"leetcode-export/internal/adapter/logging"
	"leetcode-export/internal/config"
	"leetcode-export/internal/domain/ports"
	"leetcode-export/internal/usecase"
)

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewJSONLogger(os.Stdout, cfg.LogLevel)
}

func provideNormalizer(cfg *config.Config) (ports.TextNormalizer, error) {
	return htmltext.New(cfg.DescriptionFormat)
}

func provideClient(cfg *config.Config, normalizer ports.TextNormalizer, logger ports.Logger) *leetcode.Client {
	return leetcode.New(leetcode.Options{
		Endpoint:    cfg.GraphQLURL,
		SiteURL:     cfg.SiteURL,
		PageSize:    cfg.PageSize,
		ListDelay:   cfg.ListDelay,
		DetailDelay: cfg.DetailDelay,
		Timeout:     cfg.RequestTimeout,
		Referer:     cfg.Referer,
		UserAgent:   cfg.UserAgent,
		Session:     cfg.Session,
		CSRFToken:   cfg.CSRFToken,
	}, normalizer, logger)
}

func provideSink(cfg *config.Config) ports.RecordSink {
	return jsonfile.NewWriter(cfg.OutputFile)
}

func provideExportConfig(cfg *config.Config) usecase.ExportConfig {
	return usecase.ExportConfig{
		DesiredCount: cfg.DesiredCount,
	}
}

func provideSchedule(cfg *config.Config) string {
	return cfg.ScheduleCron
}
