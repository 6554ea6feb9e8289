package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{
	"run_id", "time_step", "cycle", "kind", "x", "y", "value", "message",
}

// WriteCSV writes events as CSV with a header row.
func WriteCSV(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, event := range events {
		record := []string{
			event.RunID,
			strconv.FormatUint(uint64(event.TimeStep), 10),
			strconv.FormatUint(uint64(event.Cycle), 10),
			string(event.Kind),
			strconv.Itoa(event.X),
			strconv.Itoa(event.Y),
			strconv.FormatUint(uint64(event.Value), 10),
			event.Message,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads events from CSV written by WriteCSV.
func ReadCSV(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(header))
	}
	var events []Event
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		event, err := parseCSVRecord(record)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func parseCSVRecord(record []string) (Event, error) {
	timeStep, err := strconv.ParseUint(record[1], 10, 32)
	if err != nil {
		return Event{}, fmt.Errorf("time_step: %w", err)
	}
	cycle, err := strconv.ParseUint(record[2], 10, 32)
	if err != nil {
		return Event{}, fmt.Errorf("cycle: %w", err)
	}
	x, err := strconv.Atoi(record[4])
	if err != nil {
		return Event{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.Atoi(record[5])
	if err != nil {
		return Event{}, fmt.Errorf("y: %w", err)
	}
	value, err := strconv.ParseUint(record[6], 10, 32)
	if err != nil {
		return Event{}, fmt.Errorf("value: %w", err)
	}
	return Event{
		RunID:    record[0],
		TimeStep: uint32(timeStep),
		Cycle:    uint32(cycle),
		Kind:     EventKind(record[3]),
		X:        x,
		Y:        y,
		Value:    uint32(value),
		Message:  record[7],
	}, nil
}

// WriteCSVFile writes events to a CSV file.
func WriteCSVFile(path string, events []Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, events); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSVFile reads events from a CSV file.
func ReadCSVFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
