package timers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HamzaEzziymy/timers/pkg/models"
	"github.com/tidwall/gjson"
)

// Layouts accepted when reading times, in the order they are tried. The last
// two are HTML datetime-local values and are read in the local zone.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTime parses a timestamp in any of the accepted layouts
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

type record struct {
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Encode renders the list as a JSON array of records
func Encode(list []models.Timer) (string, error) {
	records := make([]record, len(list))
	for i, t := range list {
		records[i] = record{
			Title:     t.Title,
			StartTime: t.StartTime.Format(time.RFC3339Nano),
			EndTime:   t.EndTime.Format(time.RFC3339Nano),
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode timers: %w", err)
	}
	return string(data), nil
}

// Decode parses a payload produced by Encode, or by the browser widget that
// stored datetime-local strings. Any malformed element fails the whole payload.
func Decode(payload string) ([]models.Timer, error) {
	if !gjson.Valid(payload) {
		return nil, &DeserializationError{Err: errors.New("payload is not valid JSON")}
	}
	root := gjson.Parse(payload)
	if !root.IsArray() {
		return nil, &DeserializationError{Err: fmt.Errorf("expected a JSON array, got %s", root.Type)}
	}

	list := []models.Timer{}
	var decodeErr error
	root.ForEach(func(key, value gjson.Result) bool {
		t, err := decodeRecord(value)
		if err != nil {
			decodeErr = fmt.Errorf("record %d: %w", key.Int(), err)
			return false
		}
		list = append(list, t)
		return true
	})
	if decodeErr != nil {
		return nil, &DeserializationError{Err: decodeErr}
	}
	return list, nil
}

func decodeRecord(value gjson.Result) (models.Timer, error) {
	if !value.IsObject() {
		return models.Timer{}, errors.New("not an object")
	}

	title := value.Get("title")
	if title.Type != gjson.String {
		return models.Timer{}, errors.New("missing title")
	}

	start, err := decodeTime(value.Get("startTime"))
	if err != nil {
		return models.Timer{}, fmt.Errorf("startTime: %w", err)
	}
	end, err := decodeTime(value.Get("endTime"))
	if err != nil {
		return models.Timer{}, fmt.Errorf("endTime: %w", err)
	}

	return models.Timer{Title: title.String(), StartTime: start, EndTime: end}, nil
}

func decodeTime(v gjson.Result) (time.Time, error) {
	if v.Type != gjson.String {
		return time.Time{}, errors.New("missing")
	}
	return ParseTime(v.String())
}
