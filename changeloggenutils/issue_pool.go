package changeloggenutils

import (
	"time"

	"github.com/google/go-github/v32/github"
)

// issuePool holds the closed issues not yet attributed to a release, keyed by number.
// Issues leave the pool as soon as a release window takes them, so no issue can be
// considered for two windows.
type issuePool struct {
	// issue numbers in API order
	order  []int
	issues map[int]*github.Issue
}

// newIssuePool keeps the first occurrence of each issue number. Listings can repeat
// an issue when it moves between pages mid-pagination.
func newIssuePool(issues []*github.Issue) (*issuePool, int) {
	pool := &issuePool{
		issues: make(map[int]*github.Issue, len(issues)),
	}
	duplicates := 0
	for _, issue := range issues {
		number := issue.GetNumber()
		if _, seen := pool.issues[number]; seen {
			duplicates++
			continue
		}
		pool.order = append(pool.order, number)
		pool.issues[number] = issue
	}
	return pool, duplicates
}

// take removes and returns, in API order, every remaining issue closed strictly after
// closedAfter. A nil closedAfter takes everything that is left.
func (p *issuePool) take(closedAfter *time.Time) []*github.Issue {
	var taken []*github.Issue
	remaining := p.order[:0]
	for _, number := range p.order {
		issue := p.issues[number]
		if closedAfter == nil || issue.GetClosedAt().After(*closedAfter) {
			delete(p.issues, number)
			taken = append(taken, issue)
			continue
		}
		remaining = append(remaining, number)
	}
	p.order = remaining
	return taken
}

func (p *issuePool) len() int {
	return len(p.order)
}
