package render

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSet resolves font faces from an ordered list of candidates. Each
// candidate is either the name of a builtin face ("goregular",
// "gomono") or a path to a TTF/OTF file. Candidates are tried in order
// and the first one that loads wins; if none load, the minimal builtin
// bitmap face is used so that a missing font never aborts a print job.
type FontSet struct {
	Candidates []string

	mu    sync.Mutex
	faces map[int]font.Face
}

// Face returns a face for the given pixel size. Faces are cached per
// size: a font+size pair is immutable once resolved.
func (s *FontSet) Face(size int) font.Face {
	s.mu.Lock()
	defer s.mu.Unlock()

	if face, ok := s.faces[size]; ok {
		return face
	}
	if s.faces == nil {
		s.faces = make(map[int]font.Face)
	}

	face := s.load(size)
	s.faces[size] = face
	return face
}

func (s *FontSet) load(size int) font.Face {
	for _, candidate := range s.Candidates {
		face, err := loadFace(candidate, size)
		if err != nil {
			slog.Warn("Couldn't load font candidate",
				"font", candidate,
				"error", err,
			)
			continue
		}
		return face
	}

	slog.Warn("No font candidate loaded, falling back to builtin bitmap face")
	return basicfont.Face7x13
}

func loadFace(candidate string, size int) (font.Face, error) {
	data, err := fontData(candidate)
	if err != nil {
		return nil, err
	}

	parsedFont, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("Couldn't parse font %s:\n%w", candidate, err)
	}

	face, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("Couldn't create font face for %s:\n%w", candidate, err)
	}

	return face, nil
}

func fontData(candidate string) ([]byte, error) {
	switch candidate {
	case "goregular":
		return goregular.TTF, nil
	case "gomono":
		return gomono.TTF, nil
	default:
		return os.ReadFile(candidate)
	}
}
