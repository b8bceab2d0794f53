package tracker

import "golang.org/x/sync/errgroup"

// Match pairs a matched adapter instance with the owner/repo it extracted
// from the remote URL that matched it.
type Match struct {
	Connector Connector
	Owner     string
	Repo      string
}

// MatchingConnectors iterates every remote URL, and for each, every
// registered adapter, emitting one Match per hit. Order is: for each
// remote (in the order given), each adapter (registry iteration order).
// Duplicates — two adapters matching the same URL — are permitted and
// preserved, matching spec.md §4.5.
//
// Probing is pure and local (string matching against the remote URL, no
// network calls), so remotes are probed concurrently with errgroup; the
// per-remote match slices are collected in input order before flattening,
// keeping the result deterministic regardless of goroutine scheduling.
func MatchingConnectors(remotes []string, typeFilter string) []Match {
	perRemote := make([][]Match, len(remotes))

	var g errgroup.Group
	for i, url := range remotes {
		i, url := i, url
		g.Go(func() error {
			var found []Match
			for _, typeName := range order {
				if typeFilter != "" && typeFilter != typeName {
					continue
				}
				c := registry[typeName]()
				owner, repo, ok := c.SupportsRemote(url)
				if !ok {
					continue
				}
				found = append(found, Match{Connector: c, Owner: owner, Repo: repo})
			}
			perRemote[i] = found
			return nil
		})
	}
	_ = g.Wait() // probes never return an error

	var matches []Match
	for _, found := range perRemote {
		matches = append(matches, found...)
	}
	return matches
}

// ConfigOptionsFromConnectors is the flat concatenation of every
// registered adapter's ConfigOptions(), in registration order.
func ConfigOptionsFromConnectors() []string {
	var keys []string
	for _, typeName := range order {
		keys = append(keys, registry[typeName]().ConfigOptions()...)
	}
	return keys
}
