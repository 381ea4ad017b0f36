package reminders

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule используется, если в конфиге указан некорректный cron spec
const DefaultSchedule = "@every 1m"

// Dispatcher отмечает наступившие напоминания отправленными
type Dispatcher interface {
	DispatchDue(ctx context.Context, limit int) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker периодически рассылает напоминания о визитах
type Worker struct {
	dispatcher Dispatcher
	schedule   string
	batchSize  int
	logger     Logger

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
}

// NewWorker создает воркер. schedule - cron spec (стандартный формат или @every).
func NewWorker(dispatcher Dispatcher, schedule string, batchSize int, logger Logger) *Worker {
	return &Worker{
		dispatcher: dispatcher,
		schedule:   schedule,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// Start запускает расписание. Повторный вызов ничего не делает.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cron != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	// SkipIfStillRunning: медленный прогон не накладывается на следующий
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(w.schedule, func() { w.RunOnce(runCtx) }); err != nil {
		w.logger.Warn("reminders.worker: invalid schedule %q, falling back to %s: %v", w.schedule, DefaultSchedule, err)
		c = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
		_, _ = c.AddFunc(DefaultSchedule, func() { w.RunOnce(runCtx) })
	}

	c.Start()
	w.cron = c
	w.logger.Info("reminders.worker: started with schedule %q", w.schedule)
}

// Stop останавливает расписание и ждет завершения текущего прогона
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
		w.cron = nil
	}
	w.logger.Info("reminders.worker: stopped")
}

// RunOnce выполняет один прогон рассылки
func (w *Worker) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	n, err := w.dispatcher.DispatchDue(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("reminders.worker: dispatch failed after %d reminders: %v", n, err)
		return
	}
	if n > 0 {
		w.logger.Info("reminders.worker: dispatched %d reminders", n)
	}
}
