package worker

import "sync"

type TaskStop struct{}

type Task interface{}

type Worker struct {
	name     string
	sender   chan<- Task
	receiver <-chan Task
	wg       *sync.WaitGroup
}

type TaskHandler interface {
	Handle(t Task)
}

type Starter interface {
	Start()
}

// Stopper is called once after the worker has received TaskStop.
type Stopper interface {
	Stop()
}

// Start runs handler on a new goroutine. Tasks are handled one at a time in the order they were sent.
func (w *Worker) Start(handler TaskHandler) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if s, ok := handler.(Starter); ok {
			s.Start()
		}
		for {
			task := <-w.receiver
			if _, ok := task.(TaskStop); ok {
				if s, ok := handler.(Stopper); ok {
					s.Stop()
				}
				return
			}
			handler.Handle(task)
		}
	}()
}

func (w *Worker) Name() string {
	return w.name
}

func (w *Worker) Sender() chan<- Task {
	return w.sender
}

// Len returns the number of queued tasks.
func (w *Worker) Len() int {
	return len(w.receiver)
}

func (w *Worker) Stop() {
	w.sender <- TaskStop{}
}

func NewWorkerWithCapacity(name string, capacity int, wg *sync.WaitGroup) *Worker {
	ch := make(chan Task, capacity)
	return &Worker{
		sender:   (chan<- Task)(ch),
		receiver: (<-chan Task)(ch),
		name:     name,
		wg:       wg,
	}
}
