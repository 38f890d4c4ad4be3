//go:build wireinject

package di

import (
	"github.com/google/wire"

	"leetcode-export/internal/adapter/leetcode"
	"leetcode-export/internal/adapter/logging"
	"leetcode-export/internal/app"
	"leetcode-export/internal/config"
	"leetcode-export/internal/domain/ports"
	"leetcode-export/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp(opts config.Options) (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideNormalizer,
		provideClient,
		wire.Bind(new(ports.ProblemLister), new(*leetcode.Client)),
		wire.Bind(new(ports.ProblemFetcher), new(*leetcode.Client)),
		provideSink,
		provideExportConfig,
		usecase.NewExport,
		wire.Bind(new(app.Job), new(*usecase.Export)),
		provideSchedule,
		app.New,
	)
	return nil, nil
}
