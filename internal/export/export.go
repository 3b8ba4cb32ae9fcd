// Package export writes assembled workouts to a local file or an S3 bucket.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/otfkit/internal/constants"
	"github.com/julianstephens/otfkit/internal/models"
)

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Document is the exported file: the workouts plus when and for which
// window they were fetched.
type Document struct {
	Timestamp string           `json:"timestamp"`
	Count     int              `json:"count"`
	DateRange DateRange        `json:"date_range"`
	Data      []models.Workout `json:"data"`
}

func NewDocument(workouts []models.Workout, start, end, now time.Time) Document {
	if workouts == nil {
		workouts = []models.Workout{}
	}
	return Document{
		Timestamp: now.Format(time.RFC3339),
		Count:     len(workouts),
		DateRange: DateRange{
			Start: start.Format(constants.DateFormat),
			End:   end.Format(constants.DateFormat),
		},
		Data: workouts,
	}
}

// Encode renders doc as indented JSON.
func (d Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return append(data, '\n'), nil
}

// Marshal encodes doc in the format implied by name's extension: YAML for
// .yaml and .yml, JSON otherwise. It also returns the content type.
func (d Document) Marshal(name string) ([]byte, string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		data, err := d.EncodeYAML()
		return data, "application/yaml", err
	default:
		data, err := d.Encode()
		return data, "application/json", err
	}
}

// EncodeYAML renders doc as YAML with the same keys as the JSON form.
func (d Document) EncodeYAML() ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	data, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export as yaml: %w", err)
	}
	return data, nil
}

// FileName is the default export name for a window. format is "json" or "yaml".
func FileName(start, end time.Time, format string) string {
	if format == "" {
		format = "json"
	}
	return fmt.Sprintf("workouts_%s_%s.%s", start.Format("20060102"), end.Format("20060102"), format)
}

// Sink stores an export document under name and returns where it went.
type Sink interface {
	Write(ctx context.Context, name string, doc Document) (string, error)
}

// FileSink writes exports into a directory, or to an exact path when name
// is absolute or contains a directory.
type FileSink struct {
	Dir string
}

func (s FileSink) Write(_ context.Context, name string, doc Document) (string, error) {
	data, _, err := doc.Marshal(name)
	if err != nil {
		return "", err
	}

	path := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		path = filepath.Join(s.Dir, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
