package seed

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/logger"
)

// randomInt returns a uniform value in [0, n) using crypto/rand.
func randomInt(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// Generate builds a snapshot of cfg.Competitors competitors. The first
// Competitors-Unranked of them get one ranking each, with unique ranks 1..k
// and points strictly decreasing with rank so both leaderboards are free of
// ties. Rows are shuffled before they are returned.
func Generate(ctx context.Context, cfg *Config, stats *Stats) (model.Snapshot, error) {
	n := cfg.Competitors
	if n <= 0 {
		return model.Snapshot{}, ErrNoCompetitors
	}
	unranked := min(max(cfg.Unranked, 0), n)
	ranked := n - unranked

	logger.Get().Info(ctx, "generating competitors",
		logger.Int("competitors", n),
		logger.Int("unranked", unranked))

	ids := make([]string, n)
	for i := range ids {
		ids[i] = uuid.New().String()
	}

	type result struct {
		index      int
		competitor model.Competitor
		ranking    *model.Ranking
	}

	workers := min(max(cfg.Workers, 1), n)
	perWorker := n / workers
	results := make(chan result, workers*workerChannelMultiple)

	for w := range workers {
		start := w * perWorker
		end := start + perWorker
		if w == workers-1 {
			end = n
		}
		go func(start, end int) {
			for i := start; i < end; i++ {
				r := result{index: i, competitor: generateCompetitor(ids[i])}
				if i < ranked {
					rk := generateRanking(ids[i], i+1, ranked)
					r.ranking = &rk
				}
				select {
				case <-ctx.Done():
					return
				case results <- r:
				}
			}
		}(start, end)
	}

	competitors := make([]model.Competitor, n)
	rankings := make([]model.Ranking, ranked)
	for range n {
		select {
		case <-ctx.Done():
			return model.Snapshot{}, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		case r := <-results:
			competitors[r.index] = r.competitor
			if r.ranking != nil {
				rankings[r.index] = *r.ranking
			}
		}
	}

	shuffle(competitors)
	shuffle(rankings)

	if stats != nil {
		stats.CompetitorsGenerated = len(competitors)
		stats.RankingsGenerated = len(rankings)
	}
	logger.Get().Info(ctx, "generated snapshot",
		logger.Int("competitors", len(competitors)),
		logger.Int("rankings", len(rankings)))

	return model.Snapshot{Competitors: competitors, Rankings: rankings}, nil
}

func generateCompetitor(id string) model.Competitor {
	return model.Competitor{
		ID:      id,
		Name:    firstNames[randomInt(len(firstNames))] + " " + lastNames[randomInt(len(lastNames))],
		Country: countries[randomInt(len(countries))],
	}
}

// generateRanking places points in [(ranked-rank+1)*step, (ranked-rank+2)*step).
func generateRanking(id string, rank, ranked int) model.Ranking {
	return model.Ranking{
		CompetitorID:       id,
		Rank:               rank,
		Points:             (ranked-rank+1)*pointsStep + randomInt(pointsStep),
		Movement:           randomInt(2*maxMovement+1) - maxMovement,
		CompetitionsPlayed: minCompetitions + randomInt(competitionsRange),
	}
}

func shuffle[T any](s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := randomInt(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
