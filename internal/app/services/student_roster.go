package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/yigit/hogwarts/internal/app/models"
	"golang.org/x/sync/errgroup"
)

const (
	rosterSize      = 6
	rosterChunkSize = 2
)

// RosterConfig controls the roster printing demo
type RosterConfig struct {
	// Out receives one name per line, os.Stdout when nil
	Out io.Writer
	// Delay is slept after every printed name to make interleaving visible
	Delay time.Duration
}

func (c RosterConfig) withDefaults() RosterConfig {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	return c
}

// rosterPrinter writes names and remembers the order they were written in
type rosterPrinter struct {
	out   io.Writer
	delay time.Duration

	mu      sync.Mutex // guards out and printed
	printed []string

	// held for a whole name+delay in synchronized mode
	turn sync.Mutex
}

func (p *rosterPrinter) write(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, name)
	p.printed = append(p.printed, name)
}

func (p *rosterPrinter) pause(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *rosterPrinter) printChunk(ctx context.Context, chunk []*models.Student, synchronized bool) error {
	for _, student := range chunk {
		if synchronized {
			p.turn.Lock()
		}
		p.write(student.Name)
		err := p.pause(ctx)
		if synchronized {
			p.turn.Unlock()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *rosterPrinter) result() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.printed...)
}

// rosterChunks splits the first rosterSize students, nil when there are fewer
func rosterChunks(students []*models.Student) [][]*models.Student {
	if len(students) < rosterSize {
		return nil
	}
	var chunks [][]*models.Student
	for i := 0; i < rosterSize; i += rosterChunkSize {
		chunks = append(chunks, students[i:i+rosterChunkSize])
	}
	return chunks
}

func (s *studentServiceImpl) rosterSetup(ctx context.Context) ([][]*models.Student, *rosterPrinter, error) {
	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return nil, nil, err
	}
	chunks := rosterChunks(students)
	if chunks == nil {
		s.logger.Info().Int("students", len(students)).Int("required", rosterSize).Msg("Not enough students to print roster")
	}
	return chunks, &rosterPrinter{out: s.roster.Out, delay: s.roster.Delay}, nil
}

// PrintStudentsParallel prints the first chunk on the calling goroutine and
// the other chunks on their own goroutines. Output order across chunks is not defined.
func (s *studentServiceImpl) PrintStudentsParallel(ctx context.Context) ([]string, error) {
	chunks, printer, err := s.rosterSetup(ctx)
	if err != nil || chunks == nil {
		return []string{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range chunks[1:] {
		chunk := chunk
		g.Go(func() error {
			return printer.printChunk(gctx, chunk, false)
		})
	}

	mainErr := printer.printChunk(ctx, chunks[0], false)
	if err := g.Wait(); err != nil {
		return printer.result(), err
	}
	return printer.result(), mainErr
}

// PrintStudentsSynchronized prints the same chunks strictly one after another.
// Each worker is joined before the next starts and every print holds the turn lock.
func (s *studentServiceImpl) PrintStudentsSynchronized(ctx context.Context) ([]string, error) {
	chunks, printer, err := s.rosterSetup(ctx)
	if err != nil || chunks == nil {
		return []string{}, err
	}

	if err := printer.printChunk(ctx, chunks[0], true); err != nil {
		return printer.result(), err
	}

	for _, chunk := range chunks[1:] {
		var g errgroup.Group
		g.Go(func() error {
			return printer.printChunk(ctx, chunk, true)
		})
		if err := g.Wait(); err != nil {
			return printer.result(), err
		}
	}

	printed := printer.result()
	s.logger.Debug().Int("printed", len(printed)).Msg("Roster printed")
	return printed, nil
}
