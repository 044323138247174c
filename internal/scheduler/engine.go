package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrUnavailable        = errors.New("scheduler: alerts unavailable")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

// Alert is one pending one-shot notification.
type Alert struct {
	Handle    string
	TaskID    string
	Kind      string
	Title     string
	Body      string
	TriggerAt time.Time
}

type queueItem struct {
	alert Alert
}

type alertQueue []queueItem

func (q alertQueue) Len() int { return len(q) }

func (q alertQueue) Less(i, j int) bool {
	return q[i].alert.TriggerAt.Before(q[j].alert.TriggerAt)
}

func (q alertQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *alertQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *alertQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Engine delivers one-shot alerts at their trigger time. Cancellation is
// lazy: cancelled handles stay in the heap and are skipped when they surface.
type Engine struct {
	mu        sync.Mutex
	queue     alertQueue
	cancelled map[string]bool
	out       chan Alert
	wakeup    chan struct{}
	stopCh    chan struct{}
	doneCh    chan struct{}
	started   bool
	stopped   bool
	available bool
	dropped   uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:     make(alertQueue, 0),
		cancelled: make(map[string]bool),
		out:       make(chan Alert, bufferSize),
		wakeup:    make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		available: true,
	}
}

func (e *Engine) C() <-chan Alert {
	return e.out
}

// Available reports whether the host allows alerts. Mirrors the platform
// permission flag: when false, Schedule refuses instead of failing later.
func (e *Engine) Available() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.available
}

func (e *Engine) SetAvailable(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.available = v
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule registers a one-shot alert and returns its opaque handle.
func (e *Engine) Schedule(at time.Time, title, body, taskID, kind string) (string, error) {
	if at.IsZero() {
		return "", ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return "", ErrStopped
	}
	if !e.available {
		return "", ErrUnavailable
	}

	alert := Alert{
		Handle:    uuid.NewString(),
		TaskID:    taskID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		TriggerAt: at,
	}
	heap.Push(&e.queue, queueItem{alert: alert})
	e.signalWakeup()
	return alert.Handle, nil
}

func (e *Engine) Cancel(handle string) {
	if handle == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelled[handle] = true
}

func (e *Engine) CancelAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, item := range e.queue {
		e.cancelled[item.alert.Handle] = true
	}
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, item := range e.queue {
		if !e.cancelled[item.alert.Handle] {
			n++
		}
	}
	return n
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.TriggerAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now().UTC())
			for _, alert := range due {
				select {
				case e.out <- alert:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Alert, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.discardCancelledHead()
	if len(e.queue) == 0 {
		return Alert{}, false
	}
	return e.queue[0].alert, true
}

func (e *Engine) popDue(now time.Time) []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Alert, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].alert
		if e.cancelled[next.Handle] {
			heap.Pop(&e.queue)
			delete(e.cancelled, next.Handle)
			continue
		}
		if next.TriggerAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.alert)
	}
	return out
}

func (e *Engine) discardCancelledHead() {
	for len(e.queue) > 0 && e.cancelled[e.queue[0].alert.Handle] {
		item := heap.Pop(&e.queue).(queueItem)
		delete(e.cancelled, item.alert.Handle)
	}
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
