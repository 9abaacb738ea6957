// Пакет для управления cron-задачами сервиса.
//
// Задачи описываются реестром имя -> расписание и функция. Менеджер ставит их в расписание,
// пишет в лог длительность и ошибки запусков, а при остановке отменяет контекст задач и ждет их
// завершения.
package cronmanager

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

type CronJobFunc func(ctx context.Context) error

type Job struct {
	Func     CronJobFunc
	Schedule string
}

type JobRegistry map[string]Job

type CronManager struct {
	dispatcher *cron.Cron
	registry   JobRegistry

	mu      sync.Mutex
	entries map[string]cron.EntryID

	ctx    context.Context
	cancel context.CancelFunc
}

// NewCronManager создает менеджер для реестра задач. Контекст задач отменяется при Stop.
func NewCronManager(registry JobRegistry) *CronManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &CronManager{
		dispatcher: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		registry:   registry,
		entries:    make(map[string]cron.EntryID),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// LoadJobs пересоздает расписание по реестру. Возвращает первую ошибку, остальные только пишет в лог.
func (cm *CronManager) LoadJobs() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for name, id := range cm.entries {
		cm.dispatcher.Remove(id)
		delete(cm.entries, name)
	}

	var first error
	for name, job := range cm.registry {
		id, err := cm.dispatcher.AddFunc(job.Schedule, func() { cm.run(name, job.Func) })
		if err != nil {
			err = fmt.Errorf("schedule job %q: %w", name, err)
			slog.Error("Error adding job", "name", name, "err", err)
			if first == nil {
				first = err
			}
			continue
		}
		cm.entries[name] = id
	}
	return first
}

// Run выполняет задачу из реестра сразу, вне расписания.
func (cm *CronManager) Run(name string) error {
	job, ok := cm.registry[name]
	if !ok {
		return fmt.Errorf("no job registered for name %q", name)
	}
	return cm.run(name, job.Func)
}

func (cm *CronManager) run(name string, f CronJobFunc) error {
	start := time.Now()
	err := f(cm.ctx)
	if err != nil {
		slog.Error("Cron job failed", "name", name, "duration", time.Since(start), "err", err)
		return err
	}
	slog.Debug("Cron job done", "name", name, "duration", time.Since(start))
	return nil
}

func (cm *CronManager) RemoveJob(name string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if id, ok := cm.entries[name]; ok {
		cm.dispatcher.Remove(id)
		delete(cm.entries, name)
	}
}

// Jobs возвращает отсортированные имена запланированных задач.
func (cm *CronManager) Jobs() []string {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	res := make([]string, 0, len(cm.entries))
	for name := range cm.entries {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

func (cm *CronManager) Start() {
	cm.dispatcher.Start()
}

// Stop дожидается завершения выполняющихся задач.
func (cm *CronManager) Stop() {
	cm.cancel()
	<-cm.dispatcher.Stop().Done()
}
