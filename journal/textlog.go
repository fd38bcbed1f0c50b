package journal

import (
	"fmt"
	"os"
)

// TextLog is the append-only human-readable trade log, one line per trade.
// The file is opened in append mode so restarts extend the same log.
type TextLog struct {
	f *os.File
}

func NewText(path string) (*TextLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open trade log: %w", err)
	}
	return &TextLog{f: f}, nil
}

func (j *TextLog) RecordTrade(r Record) error {
	_, err := fmt.Fprintln(j.f, r.Trade().String())
	return err
}

func (j *TextLog) Close() error {
	return j.f.Close()
}
