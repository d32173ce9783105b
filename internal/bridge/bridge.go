// Package bridge turns GoCube notifications into simulator move requests.
package bridge

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/protocol"
)

// faceMoves maps the center color of a turned face to its clockwise
// quarter turn, with white up and green in front.
var faceMoves = map[string]cubesim.Move{
	"white":  cubesim.U,
	"yellow": cubesim.D,
	"green":  cubesim.F,
	"blue":   cubesim.B,
	"red":    cubesim.R,
	"orange": cubesim.L,
}

// MoveForRotation maps one decoded rotation to a quarter turn.
func MoveForRotation(ev protocol.RotationEvent) (cubesim.Move, error) {
	m, ok := faceMoves[ev.Color]
	if !ok {
		return cubesim.Move{}, fmt.Errorf("bridge: no face for color %q", ev.Color)
	}
	if !ev.Clockwise {
		m = m.Inverse()
	}
	return m, nil
}

// EventSink stores raw device frames. recorder.Session satisfies it.
type EventSink interface {
	RecordEvent(eventType, payloadJSON string, raw []byte) error
}

// Bridge receives messages on the BLE goroutine and hands move requests to
// the renderer over a buffered channel. When the buffer is full new moves
// are dropped and counted.
type Bridge struct {
	moves   chan cubesim.Move
	faces   chan string
	sink    EventSink
	log     zerolog.Logger
	dropped atomic.Int64
	battery atomic.Int64
}

// New creates a bridge buffering up to buffer pending moves.
func New(buffer int, log zerolog.Logger) *Bridge {
	if buffer <= 0 {
		buffer = 1
	}
	b := &Bridge{
		moves: make(chan cubesim.Move, buffer),
		faces: make(chan string, 1),
		log:   log.With().Str("component", "bridge").Logger(),
	}
	b.battery.Store(-1)
	return b
}

// SetEventSink stores every received frame in sink.
func (b *Bridge) SetEventSink(sink EventSink) {
	b.sink = sink
}

// Moves returns the channel of requested quarter turns.
func (b *Bridge) Moves() <-chan cubesim.Move {
	return b.moves
}

// FrontFaces returns the channel of front face changes reported by the
// cube's orientation sensor (F, R, B or L).
func (b *Bridge) FrontFaces() <-chan string {
	return b.faces
}

// Dropped returns the number of moves discarded because the buffer was full.
func (b *Bridge) Dropped() int64 {
	return b.dropped.Load()
}

// Battery returns the last reported battery level, or -1.
func (b *Bridge) Battery() int {
	return int(b.battery.Load())
}

// Handle processes one parsed message.
func (b *Bridge) Handle(msg *protocol.Message) {
	if b.sink != nil {
		b.store(msg)
	}

	switch msg.Type {
	case protocol.MsgTypeRotation:
		rotations, err := protocol.DecodeRotation(msg.Payload)
		if err != nil {
			b.log.Warn().Err(err).Msg("bad rotation payload")
			return
		}
		for _, ev := range rotations {
			m, err := MoveForRotation(ev)
			if err != nil {
				b.log.Warn().Err(err).Msg("unmapped rotation")
				continue
			}
			b.push(m)
		}

	case protocol.MsgTypeOrientation:
		o, err := protocol.DecodeOrientation(msg.Payload)
		if err != nil {
			b.log.Debug().Err(err).Msg("bad orientation payload")
			return
		}
		switch o.FrontFace {
		case "F", "R", "B", "L":
			b.setFace(o.FrontFace)
		}

	case protocol.MsgTypeBattery:
		if ev, err := protocol.DecodeBattery(msg.Payload); err == nil {
			b.battery.Store(int64(ev.Level))
			b.log.Info().Int("level", ev.Level).Msg("battery")
		}
	}
}

func (b *Bridge) push(m cubesim.Move) {
	select {
	case b.moves <- m:
		b.log.Debug().Str("move", m.Notation()).Msg("device move")
	default:
		b.dropped.Add(1)
		b.log.Warn().Str("move", m.Notation()).Msg("move buffer full, dropping device move")
	}
}

// setFace keeps only the latest face.
func (b *Bridge) setFace(face string) {
	select {
	case <-b.faces:
	default:
	}
	select {
	case b.faces <- face:
	default:
	}
}

func (b *Bridge) store(msg *protocol.Message) {
	eventType, payload, err := protocol.DecodeMessage(msg)
	if err != nil {
		payload = fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	if err := b.sink.RecordEvent(eventType, payload, msg.Raw); err != nil {
		b.log.Error().Err(err).Msg("failed to store device event")
	}
}
