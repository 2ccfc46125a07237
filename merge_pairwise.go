package fsort

import (
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/fsortio/fsort/runfile"
)

// pairwiseMerger consolidates runs through tournament rounds of adjacent
// pair merges. Each round halves the run count, so k initial runs take
// ceil(log2 k) passes over the data; an unpaired trailing run is carried
// into the next round unchanged.
type pairwiseMerger struct {
	bufferElements int
	dir            string
	trace          *Trace
}

func (m *pairwiseMerger) consolidate(paths []string) (string, error) {
	for len(paths) > 1 {
		next := make([]string, (len(paths)+1)/2)

		// Pairs within a round touch disjoint input and output files, so
		// they run concurrently; the group wait is the round barrier.
		var g errgroup.Group
		for i := 0; i+1 < len(paths); i += 2 {
			i := i
			g.Go(func() error {
				out, err := m.mergePair(paths[i], paths[i+1])
				if err != nil {
					return err
				}
				next[i/2] = out
				return nil
			})
		}
		if len(paths)%2 == 1 {
			next[len(next)-1] = paths[len(paths)-1]
		}
		if err := g.Wait(); err != nil {
			return "", err
		}
		paths = next
	}
	return paths[0], nil
}

// mergePair streams two sorted runs through the entry comparator into a new
// run file, then deletes both inputs. Stream entries carry zero tie/seq, so
// equal keys resolve to the left reader; once one side is exhausted the
// remainder of the other extends a single trailing segment.
func (m *pairwiseMerger) mergePair(a, b string) (string, error) {
	ra, err := runfile.Open(a, m.bufferElements)
	if err != nil {
		return "", NewDiskError(err, "open run", a)
	}
	defer ra.Close()
	rb, err := runfile.Open(b, m.bufferElements)
	if err != nil {
		return "", NewDiskError(err, "open run", b)
	}
	defer rb.Close()

	out, err := runfile.Create(m.dir, m.bufferElements)
	if err != nil {
		return "", NewDiskError(err, "create run", "")
	}

	var seg segmentTracker
	for {
		va, oka := ra.Peek()
		vb, okb := rb.Peek()
		if !oka && !okb {
			break
		}

		var v float64
		var src *runfile.Reader
		switch {
		case !okb:
			seg.take(sideLeft)
			v, src = va, ra
		case !oka:
			seg.take(sideRight)
			v, src = vb, rb
		case streamEntry(va).less(streamEntry(vb)):
			seg.take(sideLeft)
			v, src = va, ra
		default:
			seg.take(sideRight)
			v, src = vb, rb
		}

		if err := out.Append(v); err != nil {
			return "", NewDiskError(err, "write run", out.Name())
		}
		if err := src.Next(); err != nil {
			return "", NewDiskError(err, "read run", "")
		}
	}
	seg.flush(m.trace)

	if err := out.Finish(); err != nil {
		return "", NewDiskError(err, "flush run", out.Name())
	}
	if err := ra.Close(); err != nil {
		return "", NewDiskError(err, "close run", a)
	}
	if err := rb.Close(); err != nil {
		return "", NewDiskError(err, "close run", b)
	}
	if err := os.Remove(a); err != nil {
		return "", NewDiskError(err, "remove run", a)
	}
	if err := os.Remove(b); err != nil {
		return "", NewDiskError(err, "remove run", b)
	}
	return out.Name(), nil
}
