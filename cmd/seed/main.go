// Command seed fills the score collections with demo players so the
// leaderboards have something to show in local development.
package main

import (
	"context"
	"denizquiz/internal/app"
	"denizquiz/internal/config"
	"denizquiz/internal/logger"
	"denizquiz/internal/metrics"
	"denizquiz/internal/model"
	"denizquiz/internal/quiz"
	"denizquiz/internal/repository"
	"denizquiz/internal/service"
	"flag"
	"math/rand/v2"
	"os"
	"time"

	"go.uber.org/zap"
)

var demoPlayers = []string{
	"Deniz", "Ece", "Mert", "Zeynep", "Can", "Elif", "Emre", "Selin", "Kaan", "Ayşe",
}

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file")
	seed := flag.Uint64("seed", 1, "random seed for generated scores")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFile)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := app.ConnectMongo(ctx, cfg, log)
	if err != nil {
		log.Fatal("connect failed", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DBName)
	if err := repository.EnsureIndexes(ctx, db, log); err != nil {
		log.Fatal("index setup failed", zap.Error(err))
	}

	assembler := quiz.NewAssembler(cfg.Quiz.EpisodeCount, cfg.Quiz.MaxQuestions)
	scores := service.NewScoreService(repository.NewScoreRepo(db), assembler, metrics.Noop(), log)
	rng := rand.New(rand.NewPCG(*seed, *seed))

	submitted := 0
	for _, name := range demoPlayers {
		episodes := 1 + rng.IntN(cfg.Quiz.EpisodeCount)
		for ep := 1; ep <= episodes; ep++ {
			correct := rng.IntN(cfg.Quiz.MaxQuestions + 1)
			bonus := rng.IntN(correct*model.SpeedBonusCeiling + 1)
			_, err := scores.SubmitEpisode(ctx, model.EpisodeScoreSubmission{
				PlayerName:   name,
				EpisodeID:    ep,
				Score:        correct*model.PointsMedium + bonus,
				CorrectCount: correct,
				SpeedBonus:   bonus,
			})
			if err != nil {
				log.Fatal("episode score failed", zap.String("player", name), zap.Error(err))
			}
			submitted++
		}

		answered := 10 + rng.IntN(100)
		correct := rng.IntN(answered + 1)
		if _, err := scores.SubmitMixed(ctx, model.MixedScoreSubmission{
			PlayerName:        name,
			Score:             correct * model.PointsMedium,
			CorrectCount:      correct,
			QuestionsAnswered: answered,
		}); err != nil {
			log.Fatal("mixed score failed", zap.String("player", name), zap.Error(err))
		}
		submitted++
	}

	log.Info("seeded demo scores", zap.Int("players", len(demoPlayers)), zap.Int("submissions", submitted))
}
