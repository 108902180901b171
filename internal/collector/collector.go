// Package collector orchestrates the source adapters per hardware
// category and merges their results into the snapshot model. A collector
// always returns a value: adapter failures degrade the result to
// unknown/empty fields and land in the diagnostics diary, never in an
// error to the caller.
package collector

import (
	"context"
	"sort"

	"github.com/xpec-project/xpec/internal/diag"
	"github.com/xpec-project/xpec/internal/probe"
)

// Collector runs the adapters of one category in priority order.
type Collector struct {
	category probe.Category
	adapters []probe.Adapter
	goos     string
	diary    *diag.Diary
}

// newCollector filters the registered adapters down to the category and
// sorts them by priority, highest first. Platform eligibility stays a
// predicate so ineligible adapters still show up as skipped in the diary.
func newCollector(category probe.Category, registered []probe.Adapter, goos string, diary *diag.Diary) *Collector {
	var adapters []probe.Adapter
	for _, a := range registered {
		if a.Category() == category {
			adapters = append(adapters, a)
		}
	}
	sort.SliceStable(adapters, func(i, j int) bool {
		return adapters[i].Priority() > adapters[j].Priority()
	})
	return &Collector{category: category, adapters: adapters, goos: goos, diary: diary}
}

// result pairs an adapter with its successful facts.
type result struct {
	adapter probe.Adapter
	facts   *probe.Facts
}

// invoke runs one adapter and records its outcome.
func (c *Collector) invoke(ctx context.Context, a probe.Adapter) (*probe.Facts, bool) {
	facts, err := a.Probe(ctx)
	if err != nil {
		c.diary.Record(string(c.category), a.Name(), diag.Failed(probe.FailureReason(err)))
		return nil, false
	}
	c.diary.Record(string(c.category), a.Name(), diag.OutcomeSucceeded)
	return facts, true
}

// collectFirst implements the singleton policy: invoke in priority order,
// stop at the first success, record prior failures and skip the rest.
func (c *Collector) collectFirst(ctx context.Context) *probe.Facts {
	var found *probe.Facts
	for _, a := range c.adapters {
		if !probe.Eligible(a, c.goos) {
			c.diary.Record(string(c.category), a.Name(), diag.Skipped("platform "+c.goos))
			continue
		}
		if found != nil {
			c.diary.Record(string(c.category), a.Name(), diag.Skipped("already satisfied"))
			continue
		}
		if facts, ok := c.invoke(ctx, a); ok {
			found = facts
		}
	}
	return found
}

// collectAll implements the composite policy: every eligible adapter is
// invoked so that lower-priority sources can fill fields left unknown by
// higher-priority ones.
func (c *Collector) collectAll(ctx context.Context) []result {
	var results []result
	for _, a := range c.adapters {
		if !probe.Eligible(a, c.goos) {
			c.diary.Record(string(c.category), a.Name(), diag.Skipped("platform "+c.goos))
			continue
		}
		if facts, ok := c.invoke(ctx, a); ok {
			results = append(results, result{adapter: a, facts: facts})
		}
	}
	return results
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
