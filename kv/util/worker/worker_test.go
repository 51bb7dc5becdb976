package worker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	started bool
	stopped bool
	tasks   []int
}

func (r *recorder) Start()           { r.started = true }
func (r *recorder) Stop()            { r.stopped = true }
func (r *recorder) Handle(task Task) { r.tasks = append(r.tasks, task.(int)) }

func TestWorkerOrder(t *testing.T) {
	var wg sync.WaitGroup
	w := NewWorkerWithCapacity("test", 16, &wg)
	assert.Equal(t, "test", w.Name())
	r := &recorder{}
	for i := 0; i < 10; i++ {
		w.Sender() <- i
	}
	assert.Equal(t, 10, w.Len())
	w.Start(r)
	w.Stop()
	wg.Wait()

	assert.True(t, r.started)
	assert.True(t, r.stopped)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, r.tasks)
}
