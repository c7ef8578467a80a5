package jobs

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	AbandonStaleTransactionsSchedule = "0 * * * * *"
	jobTimeout                       = 30 * time.Second
)

type staleTransactionAbandoner interface {
	Handle(ctx context.Context, cmd commands.AbandonStaleTransactionsCommand) (int, error)
}

// AbandonStaleTransactionsJob closes out checkouts that were never completed.
type AbandonStaleTransactionsJob struct {
	handler   staleTransactionAbandoner
	olderThan time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewAbandonStaleTransactionsJob(handler staleTransactionAbandoner, olderThan time.Duration, logger *zap.Logger) *AbandonStaleTransactionsJob {
	return &AbandonStaleTransactionsJob{
		handler:   handler,
		olderThan: olderThan,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "abandon_stale_transactions_job")),
	}
}

func (j *AbandonStaleTransactionsJob) Name() string { return "abandon stale transactions" }

func (j *AbandonStaleTransactionsJob) Start() error {
	if _, err := j.cron.AddFunc(AbandonStaleTransactionsSchedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("job started", zap.Duration("older_than", j.olderThan))
	return nil
}

// Run executes one pass. It is what the schedule calls.
func (j *AbandonStaleTransactionsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cmd, err := commands.NewAbandonStaleTransactionsCommand(j.olderThan, commands.DefaultAbandonBatch)
	if err != nil {
		j.logger.Error("build command", zap.Error(err))
		return
	}

	n, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("abandon stale transactions", zap.Int("abandoned", n), zap.Error(err))
		return
	}
	if n > 0 {
		j.logger.Info("abandoned stale transactions", zap.Int("abandoned", n))
	}
}

func (j *AbandonStaleTransactionsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("job stopped")
}
