package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/soccerbrain/internal/core/behavior"
	"github.com/zeusync/soccerbrain/internal/core/events/bus"
	"github.com/zeusync/soccerbrain/internal/core/observability/log"
)

// App is everything the binary needs to run a configured role.
type App struct {
	Agent  behavior.Agent
	Logger *log.Logger
	Bus    bus.EventBus
}

// ProviderSet builds an App from a *behavior.Config.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideSnapshotProvider,
	ProvideMemory,
	behavior.NewBuiltinRegistry,
	bus.New,
	behavior.NewAgent,
	wire.Bind(new(log.Log), new(*log.Logger)),
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg *behavior.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return log.New(level), nil
}

func ProvideSnapshotProvider(cfg *behavior.Config) (behavior.Provider, error) {
	p, err := behavior.NewScriptProvider(cfg.Role, cfg.Frames)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ProvideMemory restores the decision history from cfg.HistoryFile when one
// is configured.
func ProvideMemory(cfg *behavior.Config) (behavior.Memory, error) {
	if cfg.HistoryFile == "" {
		return behavior.NewMemory(cfg.HistorySize), nil
	}
	return behavior.LoadMemoryFile(cfg.HistoryFile, cfg.HistorySize)
}
