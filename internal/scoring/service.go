package scoring

import (
	"context"
	"fmt"

	"github.com/xvxsamuel/aram-pig-sub000/internal/aggregate"
	"github.com/xvxsamuel/aram-pig-sub000/internal/logging"
)

// BaselineSource provides champion/patch aggregates for scoring.
type BaselineSource interface {
	Load(ctx context.Context, champion, patch string) (*aggregate.ChampionPatchAggregate, error)
	LoadLatestBefore(ctx context.Context, champion, patch string) (*aggregate.ChampionPatchAggregate, error)
}

// Service resolves baselines for a game and runs the scoring engine over
// them. The prior-patch aggregate is only fetched when the current patch
// lacks enough games to stand on its own.
type Service struct {
	source BaselineSource
	engine *Engine
	cfg    Config
	logger logging.Interface
}

func NewService(source BaselineSource, cfg Config) *Service {
	return &Service{
		source: source,
		engine: NewEngine(cfg),
		cfg:    cfg,
		logger: logging.Logger().Component("scoring"),
	}
}

// ScoreGame loads the champion/patch baseline for the player's game, falls
// back to the nearest earlier patch when that baseline is too thin, and
// returns the engine's breakdown.
func (s *Service) ScoreGame(ctx context.Context, player *PlayerGame) (*Breakdown, error) {
	baseline, err := s.source.Load(ctx, player.Champion, player.Patch)
	if err != nil {
		return nil, fmt.Errorf("load baseline %s/%s: %w", player.Champion, player.Patch, err)
	}

	var prior *aggregate.ChampionPatchAggregate
	if baseline == nil || baseline.Games < s.cfg.MinChampionGames {
		prior, err = s.source.LoadLatestBefore(ctx, player.Champion, player.Patch)
		if err != nil {
			return nil, fmt.Errorf("load prior baseline %s/%s: %w", player.Champion, player.Patch, err)
		}
		if prior != nil {
			s.logger.Debugf("baseline %s/%s thin, consulting prior patch", player.Champion, player.Patch)
		}
	}

	return s.engine.Score(player, baseline, prior)
}
