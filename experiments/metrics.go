package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"draughts/game"
)

// GameMetric summarizes one self-play game.
type GameMetric struct {
	ID           int
	StartingSide game.Side
	Winner       string // empty for a drawn-off game
	Drawn        bool
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalPlies   int
}

// MoveMetric records one applied ply.
type MoveMetric struct {
	Game       int
	Ply        int
	Side       game.Side
	From       game.Square
	To         game.Square
	Captures   int
	BecameKing bool
}

// Writer persists experiment metrics as CSV files under a timestamped
// subfolder of the base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates the output directory for one experiment run.
func NewWriter(baseDir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	dir := filepath.Join(baseDir, timestamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create metrics directory: %w", err)
	}
	return &Writer{baseDir: dir}, nil
}

// Dir returns the run's output directory.
func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteGames writes one row per game to games.csv.
func (w *Writer) WriteGames(records []GameMetric) error {
	f, err := os.Create(filepath.Join(w.baseDir, "games.csv"))
	if err != nil {
		return fmt.Errorf("failed to create games file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "starting_side", "winner", "drawn", "duration_ms", "total_plies"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write games header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.ID),
			r.StartingSide.String(),
			r.Winner,
			strconv.FormatBool(r.Drawn),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
			strconv.Itoa(r.TotalPlies),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record: %w", err)
		}
	}
	return nil
}

// WriteMoves writes one row per ply to moves.csv.
func (w *Writer) WriteMoves(records []MoveMetric) error {
	f, err := os.Create(filepath.Join(w.baseDir, "moves.csv"))
	if err != nil {
		return fmt.Errorf("failed to create moves file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "ply", "side", "from", "to", "captures", "became_king"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write moves header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Ply),
			r.Side.String(),
			r.From.String(),
			r.To.String(),
			strconv.Itoa(r.Captures),
			strconv.FormatBool(r.BecameKing),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write move record: %w", err)
		}
	}
	return nil
}
