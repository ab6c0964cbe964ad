package renderer

import (
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/cpu"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultWorkerCount returns the number of logical cores
func DefaultWorkerCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// SampleTask asks a worker to accumulate a share of the samples for the whole image
type SampleTask struct {
	TaskID  int   // For deterministic merge order
	Samples int   // Samples per pixel for this task
	Seed    int64 // Seed for the task's private sampler
}

// SampleResult contains the private buffer a task filled
type SampleResult struct {
	TaskID int
	Buffer *ImageBuffer
}

// WorkerPool runs sample tasks in parallel. Workers share the read-only
// raytracer; every task gets its own buffer and sampler.
type WorkerPool struct {
	taskQueue   chan SampleTask
	resultQueue chan SampleResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual sample tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	newSampler  func(seed int64) core.Sampler
	onRow       func()
	taskQueue   chan SampleTask
	resultQueue chan SampleResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize bounds the number of tasks and results that can be in flight.
func NewWorkerPool(raytracer *Raytracer, numWorkers, queueSize int, newSampler func(seed int64) core.Sampler, onRow func()) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan SampleTask, queueSize),
		resultQueue: make(chan SampleResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			newSampler:  newSampler,
			onRow:       onRow,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to finish and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a sample task to the worker pool
func (wp *WorkerPool) SubmitTask(task SampleTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed task result
func (wp *WorkerPool) GetResult() (SampleResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		buffer := NewImageBuffer(w.raytracer.width, w.raytracer.height)
		w.raytracer.SamplePixels(buffer, task.Samples, w.newSampler(task.Seed), w.onRow)

		w.resultQueue <- SampleResult{
			TaskID: task.TaskID,
			Buffer: buffer,
		}
	}
}
