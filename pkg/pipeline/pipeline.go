package pipeline

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/Beastly713/hashira/pkg/crypto/secrets"
	"github.com/Beastly713/hashira/pkg/format"
	"github.com/Beastly713/hashira/pkg/shamir"
	"github.com/Beastly713/hashira/pkg/share"
	"golang.org/x/sync/errgroup"
)

// Config holds the parameters for the solve operation
type Config struct {
	// Termwise divides every Lagrange term on its own instead of once over
	// a common denominator.
	Termwise bool

	// Workers bounds how many share sets SolveAll works on at once.
	// Zero means one per CPU.
	Workers int
}

// Job is one share-set document waiting to be solved.
type Job struct {
	Source   string
	Document *format.Document
}

// Result is the outcome of solving one Job. Exactly one of Secret and Err is set.
type Result struct {
	Source string
	Set    *share.Set
	Secret *secrets.Secret
	Err    error
}

// Load reads the document at path, choosing the codec from its extension.
func Load(path string) (*format.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer file.Close()

	reader, err := format.NewReader(file, format.CodecFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reader.Document, nil
}

// Decode turns every entry of doc into a share and builds the share set.
func Decode(doc *format.Document) (*share.Set, error) {
	shares := make([]share.Share, 0, len(doc.Shares))
	for _, e := range doc.Shares {
		s, err := share.DecodeShare(e.X, e.Base, e.Value)
		if err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return share.NewSet(doc.Keys.K, doc.Keys.N, shares)
}

// Solve orchestrates the flow: Decode -> Select -> Reconstruct
func Solve(doc *format.Document, config Config) (*share.Set, *secrets.Secret, error) {
	// 1. Decode every entry; sorting happens inside the set
	set, err := Decode(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding failed: %w", err)
	}

	// 2. Select the k shares with the smallest x
	points := set.Select()

	// 3. Reconstruct
	reconstruct := shamir.Reconstruct
	if config.Termwise {
		reconstruct = shamir.ReconstructTermwise
	}
	value, err := reconstruct(points)
	if err != nil {
		return nil, nil, fmt.Errorf("reconstruction failed: %w", err)
	}

	return set, secrets.WrapSecret(value), nil
}

// SolveAll solves independent share sets concurrently. Results keep the order
// of jobs and carry their own errors; the returned error is only set when ctx
// is cancelled before every job has run.
func SolveAll(ctx context.Context, jobs []Job, config Config) ([]Result, error) {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		i, job := i, job // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Source: job.Source, Err: err}
				return err
			}
			set, secret, err := Solve(job.Document, config)
			results[i] = Result{
				Source: job.Source,
				Set:    set,
				Secret: secret,
				Err:    err,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Normalize checks that every entry of doc decodes and returns a copy in the
// explicit layout with canonical base-10 identifiers, ordered by ascending x.
func Normalize(doc *format.Document) (*format.Document, error) {
	set, err := Decode(doc)
	if err != nil {
		return nil, err
	}

	byX := make(map[string]format.Entry, len(doc.Shares))
	for _, e := range doc.Shares {
		// Decode already accepted every identifier.
		x, _ := share.ParseIdentifier(e.X)
		e.X = x.String()
		byX[e.X] = e
	}

	out := &format.Document{
		Keys:   doc.Keys,
		Shares: make([]format.Entry, 0, set.Len()),
	}
	for _, s := range set.Shares() {
		out.Shares = append(out.Shares, byX[s.X().String()])
	}
	return out, nil
}
