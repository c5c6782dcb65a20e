package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Recorder keeps an audit trail of control operations sent to the
// controller. Sensor readings are never journaled.
type Recorder interface {
	Record(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// Repository defines the interface for journal storage
type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// Operation names a control operation.
type Operation string

const (
	OpPowerControl Operation = "power_control"
	OpFanManual    Operation = "fan_manual"
	OpFanAuto      Operation = "fan_auto"
)

func (o Operation) IsValid() bool {
	switch o {
	case OpPowerControl, OpFanManual, OpFanAuto:
		return true
	default:
		return false
	}
}

// Entry is one journaled control operation.
type Entry struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Host      string    `json:"host" yaml:"host"`
	Operation Operation `json:"operation" yaml:"operation"`
	Argument  string    `json:"argument,omitempty" yaml:"argument,omitempty"`
	Success   bool      `json:"success" yaml:"success"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewEntry builds an entry for an operation whose outcome is err.
func NewEntry(host string, op Operation, argument string, err error) *Entry {
	e := &Entry{
		Host:      host,
		Operation: op,
		Argument:  argument,
		Success:   err == nil,
	}
	if err != nil {
		e.Error = err.Error()
	}

	return e
}
