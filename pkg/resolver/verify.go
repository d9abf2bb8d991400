package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/hkmtr/pkg/fares"
	"github.com/travigo/hkmtr/pkg/network"
)

// Mismatch is a fare table entry that the network does not reproduce
type Mismatch struct {
	FromID    string       `json:"from"`
	ToID      string       `json:"to"`
	Published network.Cost `json:"published"`
	Derived   network.Cost `json:"derived"`
	Reason    string       `json:"reason,omitempty"`
}

func (m Mismatch) String() string {
	if m.Reason != "" {
		return fmt.Sprintf("%s-%s: %s", m.FromID, m.ToID, m.Reason)
	}

	return fmt.Sprintf("%s-%s: published %s derived %s", m.FromID, m.ToID, m.Published, m.Derived)
}

// VerifyFareTable derives every published adult fare from segment costs and reports entries that differ
// by more than the fare tolerance. Any mismatch makes the returned error wrap ErrInvalidData.
func (r *Resolver) VerifyFareTable() ([]Mismatch, error) {
	entries := r.fares.Entries()
	if len(entries) == 0 {
		return nil, nil
	}

	p := pool.NewWithResults[*Mismatch]().WithMaxGoroutines(32)

	for _, entry := range entries {
		p.Go(func() *Mismatch {
			return r.verifyEntry(entry)
		})
	}

	var mismatches []Mismatch
	for _, mismatch := range p.Wait() {
		if mismatch != nil {
			mismatches = append(mismatches, *mismatch)
		}
	}

	log.Debug().Int("entries", len(entries)).Int("mismatches", len(mismatches)).Msg("Verified fare table")

	if len(mismatches) == 0 {
		return nil, nil
	}

	sort.Slice(mismatches, func(i, j int) bool {
		if mismatches[i].FromID != mismatches[j].FromID {
			return mismatches[i].FromID < mismatches[j].FromID
		}
		return mismatches[i].ToID < mismatches[j].ToID
	})

	examples := make([]string, 0, 5)
	for i := 0; i < len(mismatches) && i < 5; i++ {
		examples = append(examples, mismatches[i].String())
	}

	return mismatches, fmt.Errorf("%d of %d fare entries disagree with the network (%s): %w",
		len(mismatches), len(entries), strings.Join(examples, "; "), network.ErrInvalidData)
}

func (r *Resolver) verifyEntry(entry fares.Entry) *Mismatch {
	route, err := r.ShortestPath(entry.FromID, entry.ToID)
	if err != nil {
		return &Mismatch{
			FromID:    entry.FromID,
			ToID:      entry.ToID,
			Published: entry.Adult(),
			Reason:    err.Error(),
		}
	}

	derived := r.derivedFare(route)

	difference := derived - entry.Adult()
	if difference < 0 {
		difference = -difference
	}
	if difference <= r.options.FareTolerance {
		return nil
	}

	return &Mismatch{
		FromID:    entry.FromID,
		ToID:      entry.ToID,
		Published: entry.Adult(),
		Derived:   derived,
	}
}
