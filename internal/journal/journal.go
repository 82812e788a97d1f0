package journal

import (
	"time"

	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
)

// Entry is one journal line.
type Entry struct {
	Time time.Time `json:"t"`
	Kind string    `json:"kind"`
	At   string    `json:"at,omitempty"`
	Text string    `json:"text,omitempty"`
	Data any       `json:"data,omitempty"`
}

// Header opens every file so a journal can be matched to the catalogs that
// produced it.
type Header struct {
	Server  string `json:"server"`
	Catalog string `json:"catalog"`
}

const (
	KindHeader    = "header"
	KindNarration = "narration"
)

// Journal is a world.Narrator that also records arbitrary events.
type Journal struct {
	w   *Writer
	log *zap.Logger
}

// New writes under dir. head is repeated at the top of each hourly file.
func New(dir string, head Header, log *zap.Logger) *Journal {
	w := NewWriter(dir, "journal")
	w.onRotate = func() any {
		return Entry{Time: w.now().UTC(), Kind: KindHeader, Data: head}
	}
	return &Journal{w: w, log: log}
}

// Narrate implements world.Narrator. Write errors are logged, never returned
// to the actor that spoke.
func (j *Journal) Narrate(at world.Coordinates, text string) {
	j.write(Entry{Kind: KindNarration, At: at.String(), Text: text})
}

// Record journals an event under kind.
func (j *Journal) Record(kind string, data any) {
	j.write(Entry{Kind: kind, Data: data})
}

func (j *Journal) write(e Entry) {
	e.Time = j.w.now().UTC()
	if err := j.w.Write(e); err != nil {
		j.log.Warn("journal write failed", zap.String("kind", e.Kind), zap.Error(err))
	}
}

func (j *Journal) Close() error {
	return j.w.Close()
}
