package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/plus3/stacker/game"
)

// TraceRecord is one line of the event trace.
type TraceRecord struct {
	Run int `json:"run"`
	game.Event
}

// Trace streams session events to a zstd-compressed JSON-lines file.
type Trace struct {
	file   *os.File
	buf    *bufio.Writer
	zw     *zstd.Encoder
	enc    *json.Encoder
	events int
	err    error
}

func CreateTrace(path string) (*Trace, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		f.Close()
		return nil, err
	}
	buf := bufio.NewWriter(zw)
	return &Trace{file: f, buf: buf, zw: zw, enc: json.NewEncoder(buf)}, nil
}

// Write appends one event. The first failure is kept and reported by Close.
func (t *Trace) Write(run int, e game.Event) {
	if t.err != nil {
		return
	}
	if err := t.enc.Encode(TraceRecord{Run: run, Event: e}); err != nil {
		t.err = err
		log.Printf("trace: %v", err)
		return
	}
	t.events++
}

func (t *Trace) Events() int {
	return t.events
}

func (t *Trace) Close() error {
	return errors.Join(t.err, t.buf.Flush(), t.zw.Close(), t.file.Close())
}

// ReadTrace decodes a trace written by Trace.
func ReadTrace(path string) ([]TraceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var out []TraceRecord
	dec := json.NewDecoder(zr)
	for dec.More() {
		var rec TraceRecord
		if err := dec.Decode(&rec); err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}
