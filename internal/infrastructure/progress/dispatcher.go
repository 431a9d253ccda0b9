package progress

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
)

// ErrDropped событие не помещается в буфер и отброшено
var ErrDropped = errors.New("progress event dropped: buffer full")

// ErrClosed диспетчер уже остановлен
var ErrClosed = errors.New("progress dispatcher closed")

// FinalEventWait сколько Notify ждёт места в очереди для финального события
const FinalEventWait = 5 * time.Second

// Dispatcher доставляет события медленному получателю в отдельной горутине.
// Промежуточные события при полной очереди отбрасываются без ожидания,
// финальное ждёт места не дольше finalWait.
type Dispatcher struct {
	sink      port.ProgressSink
	logger    *slog.Logger
	events    chan entity.ProgressEvent
	done      chan struct{}
	finalWait time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher запускает доставку с буфером заданного размера
func NewDispatcher(sink port.ProgressSink, buffer int, logger *slog.Logger) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		sink:      sink,
		logger:    logger,
		events:    make(chan entity.ProgressEvent, buffer),
		done:      make(chan struct{}),
		finalWait: FinalEventWait,
	}
	go d.run()
	return d
}

// Notify ставит событие в очередь
func (d *Dispatcher) Notify(event entity.ProgressEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	select {
	case d.events <- event:
		return nil
	default:
	}
	if !event.Done() {
		return ErrDropped
	}

	timer := time.NewTimer(d.finalWait)
	defer timer.Stop()
	select {
	case d.events <- event:
		return nil
	case <-timer.C:
		return ErrDropped
	}
}

// Close останавливает приём и дожидается доставки очереди
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.events {
		if err := d.sink.Notify(event); err != nil {
			d.logger.Warn("progress delivery failed",
				"event", entity.ProgressEventName,
				"current", event.Current,
				"total", event.Total,
				"err", err)
		}
	}
}

var _ port.ProgressSink = (*Dispatcher)(nil)
