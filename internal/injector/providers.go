// Package injector assembles the editor's object graph.
package injector

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/jamjar/jamjar-editor/internal/adapter"
	"github.com/jamjar/jamjar-editor/internal/config"
	"github.com/jamjar/jamjar-editor/internal/domain"
	"github.com/jamjar/jamjar-editor/internal/logs"
	m "github.com/jamjar/jamjar-editor/internal/model"
)

// App holds the long-lived services commands work with.
type App struct {
	Config    config.Config
	Logger    *zap.Logger
	FS        adapter.SourceFSAdapter
	IDs       *m.IDAllocator
	Parser    domain.ComponentParser
	Writer    domain.SceneWriter
	Templater domain.Templater
}

// NewSession opens an editor session over the project at projectRoot.
func (a *App) NewSession(projectRoot m.Path) *domain.Session {
	return domain.NewSession(a.FS, a.Parser, a.Writer, a.Templater, a.IDs, projectRoot, a.Logger)
}

// ProviderSet provides every service of App from a config.Config.
var ProviderSet = wire.NewSet(
	adapter.NewLocalSourceFSAdapter,
	wire.Bind(new(adapter.SourceFSAdapter), new(*adapter.LocalSourceFSAdapter)),
	adapter.NewLocalTSFileAdapter,
	wire.Bind(new(adapter.TSFileAdapter), new(*adapter.LocalTSFileAdapter)),
	m.NewIDAllocator,
	ProvideOptions,
	ProvideLogger,
	domain.NewComponentParser,
	domain.NewSceneWriter,
	domain.NewTemplater,
	wire.Struct(new(App), "*"),
)

// ProvideOptions extracts the domain options from cfg.
func ProvideOptions(cfg config.Config) domain.Options {
	return cfg.Options()
}

// ProvideLogger returns the process logger.
func ProvideLogger() *zap.Logger {
	return logs.L()
}
