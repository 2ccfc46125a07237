package fsort

import (
	"os"

	"github.com/fsortio/fsort/queue"
	"github.com/fsortio/fsort/runfile"
)

// kwayMerger consolidates every run in one pass: a buffered reader per run
// feeds a min-priority queue keyed by the encoded head value. Bounded by the
// file-descriptor and buffer budget per open run rather than by pass count.
type kwayMerger struct {
	bufferElements int
	dir            string
}

func (m *kwayMerger) consolidate(paths []string) (string, error) {
	pq := queue.NewPriorityQueue(func(a, b *runfile.Reader) bool {
		av, _ := a.Peek()
		bv, _ := b.Peek()
		return Key(av) < Key(bv)
	})

	for _, p := range paths {
		r, err := runfile.Open(p, m.bufferElements)
		if err != nil {
			return "", NewDiskError(err, "open run", p)
		}
		if _, ok := r.Peek(); !ok {
			// empty run, nothing to seed
			if err := r.Close(); err != nil {
				return "", NewDiskError(err, "close run", p)
			}
			continue
		}
		pq.Push(r)
	}

	out, err := runfile.Create(m.dir, m.bufferElements)
	if err != nil {
		return "", NewDiskError(err, "create run", "")
	}

	for pq.Len() > 0 {
		r := pq.Peek()
		v, _ := r.Peek()
		if err := out.Append(v); err != nil {
			return "", NewDiskError(err, "write run", out.Name())
		}
		if err := r.Next(); err != nil {
			return "", NewDiskError(err, "read run", "")
		}
		if _, ok := r.Peek(); ok {
			pq.PeekUpdate()
		} else {
			pq.Pop()
			if err := r.Close(); err != nil {
				return "", NewDiskError(err, "close run", "")
			}
		}
	}

	if err := out.Finish(); err != nil {
		return "", NewDiskError(err, "flush run", out.Name())
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			return "", NewDiskError(err, "remove run", p)
		}
	}
	return out.Name(), nil
}
