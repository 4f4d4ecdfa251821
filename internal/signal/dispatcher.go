package signal

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Receiver handles one event. Returning an error does not stop other receivers.
type Receiver func(ctx context.Context, event Event) error

// Response is the outcome of one receiver for a sent event.
type Response struct {
	DispatchUID string
	Err         error
}

type registration struct {
	dispatchUID string
	receiver    Receiver
}

type Dispatcher struct {
	mu        sync.RWMutex
	receivers map[string][]registration
	logger    *zap.SugaredLogger
}

func NewDispatcher(logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		receivers: make(map[string][]registration),
		logger:    logger,
	}
}

// Connect registers receiver for the named signal. A dispatch uid that is
// already connected to the signal keeps its first registration.
func (d *Dispatcher) Connect(signalName, dispatchUID string, receiver Receiver) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, reg := range d.receivers[signalName] {
		if reg.dispatchUID == dispatchUID {
			d.logger.Debugf("Receiver %s already connected to %s", dispatchUID, signalName)
			return
		}
	}

	d.receivers[signalName] = append(d.receivers[signalName], registration{
		dispatchUID: dispatchUID,
		receiver:    receiver,
	})
}

// Disconnect removes the registration and reports whether one existed.
func (d *Dispatcher) Disconnect(signalName, dispatchUID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	regs := d.receivers[signalName]
	for i, reg := range regs {
		if reg.dispatchUID == dispatchUID {
			d.receivers[signalName] = append(regs[:i:i], regs[i+1:]...)
			return true
		}
	}

	return false
}

func (d *Dispatcher) HasReceivers(signalName string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.receivers[signalName]) > 0
}

// Send calls every receiver of the event's signal in connection order.
func (d *Dispatcher) Send(ctx context.Context, event Event) []Response {
	signalName := event.SignalName()

	d.mu.RLock()
	regs := make([]registration, len(d.receivers[signalName]))
	copy(regs, d.receivers[signalName])
	d.mu.RUnlock()

	responses := make([]Response, 0, len(regs))
	for _, reg := range regs {
		err := reg.receiver(ctx, event)
		if err != nil {
			d.logger.Errorf("Receiver %s failed handling %s: %v", reg.dispatchUID, signalName, err)
		}
		responses = append(responses, Response{DispatchUID: reg.dispatchUID, Err: err})
	}

	return responses
}

// FirstError returns the first receiver error, if any.
func FirstError(responses []Response) error {
	for _, r := range responses {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
