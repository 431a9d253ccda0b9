package progress

import (
	"errors"

	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
)

// Func адаптер обычной функции к port.ProgressSink
type Func func(event entity.ProgressEvent)

// Notify вызывает функцию
func (f Func) Notify(event entity.ProgressEvent) error {
	f(event)
	return nil
}

// Fanout рассылает событие нескольким получателям
type Fanout []port.ProgressSink

// Notify доставляет событие всем, собирая ошибки
func (f Fanout) Notify(event entity.ProgressEvent) error {
	var errs []error
	for _, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Notify(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder сохраняет все события; используется в тестах и CLI
type Recorder struct {
	Events []entity.ProgressEvent
}

// Notify добавляет событие в журнал
func (r *Recorder) Notify(event entity.ProgressEvent) error {
	r.Events = append(r.Events, event)
	return nil
}

var (
	_ port.ProgressSink = Func(nil)
	_ port.ProgressSink = Fanout(nil)
	_ port.ProgressSink = (*Recorder)(nil)
)
