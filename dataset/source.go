package dataset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bechdel/film"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var ErrEmptySource = errors.New("dataset: source is empty")

// Source produces the complete list of films for one snapshot.
type Source interface {
	Films(ctx context.Context) ([]film.Film, error)
	String() string
}

// FileSource reads films from a structured text file. The format is picked
// from the extension: .csv, .json, .yaml or .yml.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) String() string {
	return "file:" + s.Path
}

func (s *FileSource) WatchPath() string {
	return s.Path
}

func (s *FileSource) Films(_ context.Context) ([]film.Film, error) {
	decode, err := decoderFor(s.Path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	if _, err := r.Peek(1); errors.Is(err, io.EOF) {
		return nil, ErrEmptySource
	}

	films, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(s.Path), err)
	}
	return films, nil
}

type decodeFunc func(r io.Reader) ([]film.Film, error)

func decoderFor(path string) (decodeFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return decodeCSV, nil
	case ".json":
		return decodeJSON, nil
	case ".yaml", ".yml":
		return decodeYAML, nil
	default:
		return nil, fmt.Errorf("dataset: unsupported file extension %q", ext)
	}
}

func decodeJSON(r io.Reader) ([]film.Film, error) {
	var films []film.Film
	if err := json.NewDecoder(r).Decode(&films); err != nil {
		return nil, err
	}
	return normalize(films)
}

func decodeYAML(r io.Reader) ([]film.Film, error) {
	var films []film.Film
	if err := yaml.NewDecoder(r).Decode(&films); err != nil {
		return nil, err
	}
	return normalize(films)
}

// normalize validates every record and canonicalizes the outcome casing.
func normalize(films []film.Film) ([]film.Film, error) {
	if films == nil {
		films = []film.Film{}
	}
	for i := range films {
		if err := films[i].Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		films[i].Binary, _ = film.ParseOutcome(string(films[i].Binary))
	}
	return films, nil
}
