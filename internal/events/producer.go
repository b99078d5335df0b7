// Package events publishes analysis results to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/analysis"
	"github.com/nguyentantai21042004/textlab/internal/logger"
	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "analysis.completed"

// AnalysisCompleted is the digest published after each analysis.
type AnalysisCompleted struct {
	RunID     int64     `json:"run_id,omitempty"`
	Source    string    `json:"source"`
	Mode      string    `json:"mode"`
	Language  string    `json:"language"`
	Words     int       `json:"words"`
	Counts    [4]int    `json:"zone_counts"`
	Core      []string  `json:"core"`
	MeanOME   float64   `json:"mean_ome"`
	CreatedAt time.Time `json:"created_at"`
}

// Digest summarizes r. runID is 0 when the report was not persisted.
func Digest(r *analysis.Report, runID int64) AnalysisCompleted {
	core := make([]string, len(r.Zones.Core))
	for i, e := range r.Zones.Core {
		core[i] = e.Word
	}
	return AnalysisCompleted{
		RunID:     runID,
		Source:    r.Source,
		Mode:      string(r.Mode),
		Language:  r.Language.Code,
		Words:     r.OME.Tokens,
		Counts:    r.Counts(),
		Core:      core,
		MeanOME:   r.Zones.MeanOME,
		CreatedAt: r.CreatedAt,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes JSON-encoded events keyed by source.
type Producer struct {
	writer messageWriter
	topic  string
	l      logger.Logger
}

// NewProducer returns nil when no brokers are configured. A nil Producer
// accepts and drops every event.
func NewProducer(brokers []string, topic string, l logger.Logger) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		RequiredAcks: kafka.RequireAll,
	}
	return &Producer{writer: w, topic: topic, l: l}
}

// PublishAnalysis writes one analysis.completed event synchronously.
func (p *Producer) PublishAnalysis(ctx context.Context, ev AnalysisCompleted) error {
	if p == nil {
		return nil
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling event value: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.Source),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.l.Error(ctx, "events.PublishAnalysis: topic %s key %s: %v", p.topic, ev.Source, err)
		return fmt.Errorf("publishing to kafka: %w", err)
	}
	p.l.Debug(ctx, "events.PublishAnalysis: published %s (%d bytes)", ev.Source, len(value))
	return nil
}

// Close flushes pending writes.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
