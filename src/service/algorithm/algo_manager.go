package algorithm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
	"gitlab.com/open-soft/go-etf-arbitrage/src/repository"
)

const (
	DefaultGracefulTimeout = time.Second * 10
	DefaultKillTimeout     = time.Second * 5
)

type AlgoRunnerInterface interface {
	Run(cancelCtx context.Context, cancel context.CancelFunc, killCtx context.Context)
}

// AlgoRunnerFactory builds the runner for one strategy run. Factories
// are registered per algo name at container init, unknown names fail
// fast on Start.
type AlgoRunnerFactory func(algo *model.Algo) AlgoRunnerInterface

type AlgoHandle struct {
	Algo   *model.Algo
	Cancel context.CancelFunc
	Kill   context.CancelFunc
	Done   chan struct{}
}

// AlgoManager supervises strategy runs. Every run executes in its own
// goroutine behind a cancel context (cooperative) and a kill context
// (forced teardown of the run's event listener). Stop escalates
// graceful -> forced -> abandon and always deregisters the run.
type AlgoManager struct {
	Factories       map[string]AlgoRunnerFactory
	AlgoStorage     repository.AlgoStorageInterface
	GracefulTimeout time.Duration
	KillTimeout     time.Duration

	activeAlgos map[string]*AlgoHandle
	algoMutex   sync.RWMutex
}

func (m *AlgoManager) Start(algoName string, parameters model.AlgoParameters) (string, error) {
	factory, ok := m.Factories[algoName]

	if !ok {
		return "", errors.New(fmt.Sprintf("Could not create algorithm, unknown name: %s", algoName))
	}

	if err := parameters.Validate(); err != nil {
		return "", err
	}

	algo := &model.Algo{
		Id:         uuid.New().String(),
		Name:       algoName,
		Parameters: parameters,
		Status:     model.AlgoStatusCreated,
	}

	if m.AlgoStorage != nil {
		if err := m.AlgoStorage.Create(*algo); err != nil {
			log.Printf("[%s] Could not persist algo: %s", algo.Id, err.Error())
		}
	}

	runner := factory(algo)

	cancelCtx, cancel := context.WithCancel(context.Background())
	killCtx, kill := context.WithCancel(context.Background())

	handle := &AlgoHandle{
		Algo:   algo,
		Cancel: cancel,
		Kill:   kill,
		Done:   make(chan struct{}),
	}

	m.algoMutex.Lock()
	if m.activeAlgos == nil {
		m.activeAlgos = make(map[string]*AlgoHandle)
	}
	m.activeAlgos[algo.Id] = handle
	m.algoMutex.Unlock()

	algo.Status = model.AlgoStatusRunning
	m.updateStatus(algo.Id, model.AlgoStatusRunning)

	go func() {
		defer close(handle.Done)
		runner.Run(cancelCtx, cancel, killCtx)
	}()

	log.Printf("[%s] Algo %s started", algo.Id, algoName)

	return algo.Id, nil
}

func (m *AlgoManager) Stop(algoId string) (bool, error) {
	m.algoMutex.RLock()
	handle, ok := m.activeAlgos[algoId]
	m.algoMutex.RUnlock()

	if !ok {
		return false, errors.New(fmt.Sprintf("Algo with ID %s not found", algoId))
	}

	select {
	case <-handle.Done:
		// Already exited on its own, nothing to signal.
	default:
		log.Printf("[%s] Signaling algo to stop gracefully...", algoId)
		handle.Cancel()

		if !m.waitForExit(handle, m.gracefulTimeout()) {
			log.Printf("[%s] Algo did not terminate gracefully after signal, forcing termination", algoId)
			handle.Kill()

			if !m.waitForExit(handle, m.killTimeout()) {
				log.Printf("[%s] Algo still alive after forced termination, abandoning", algoId)
			}
		}
	}

	handle.Cancel()
	handle.Kill()

	m.algoMutex.Lock()
	delete(m.activeAlgos, algoId)
	m.algoMutex.Unlock()

	handle.Algo.Status = model.AlgoStatusStopped
	m.updateStatus(algoId, model.AlgoStatusStopped)

	log.Printf("[%s] Algo was stopped", algoId)

	return true, nil
}

func (m *AlgoManager) IsActive(algoId string) bool {
	m.algoMutex.RLock()
	defer m.algoMutex.RUnlock()

	_, ok := m.activeAlgos[algoId]

	return ok
}

func (m *AlgoManager) updateStatus(algoId string, status model.AlgoStatus) {
	if m.AlgoStorage == nil {
		return
	}

	if err := m.AlgoStorage.UpdateStatus(algoId, status); err != nil {
		log.Printf("[%s] Could not persist algo status: %s", algoId, err.Error())
	}
}

func (m *AlgoManager) waitForExit(handle *AlgoHandle, timeout time.Duration) bool {
	select {
	case <-handle.Done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (m *AlgoManager) gracefulTimeout() time.Duration {
	if m.GracefulTimeout > 0 {
		return m.GracefulTimeout
	}

	return DefaultGracefulTimeout
}

func (m *AlgoManager) killTimeout() time.Duration {
	if m.KillTimeout > 0 {
		return m.KillTimeout
	}

	return DefaultKillTimeout
}
