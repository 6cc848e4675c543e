package congress

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Member describes one legislator in the metadata resource.
type Member struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party,omitempty"`
	State string `json:"state,omitempty"`
}

// Metadata is the parsed metadata resource.
type Metadata struct {
	Members []Member `json:"members"`
}

// Vote is one member's vote on one bill.
type Vote struct {
	MemberID int    `json:"memberId"`
	Bill     string `json:"bill"`
	Vote     string `json:"vote"`
}

// Records is the parsed voting-record resource.
type Records struct {
	Votes []Vote `json:"votes"`
}

// Agreement is how often two members voted the same way.
type Agreement struct {
	Percent float64
	Shared  int // bills on which both members cast a decisive vote
}

// State is the shared application state. It is filled by the loader and
// then read and mutated by views on the UI goroutine; it is not safe for
// concurrent use.
type State struct {
	MetaData *Metadata
	Data     *Records

	selected  []int
	agreement map[pair]Agreement
	memberIdx map[int]int
	indexed   *Metadata
}

type pair struct{ a, b int }

func newPair(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// NewState returns an empty State.
func NewState() *State {
	return &State{}
}

// ClearMembers empties the selection and drops derived agreement data.
func (s *State) ClearMembers() {
	s.selected = nil
	s.agreement = nil
}

// Members returns the members in metadata order.
func (s *State) Members() []Member {
	if s.MetaData == nil {
		return nil
	}
	return s.MetaData.Members
}

// Member looks up a member by ID.
func (s *State) Member(id int) (Member, bool) {
	s.index()
	i, ok := s.memberIdx[id]
	if !ok {
		return Member{}, false
	}
	return s.MetaData.Members[i], true
}

func (s *State) index() {
	if s.memberIdx != nil && s.indexed == s.MetaData {
		return
	}
	s.indexed = s.MetaData
	s.memberIdx = make(map[int]int, len(s.Members()))
	for i, m := range s.Members() {
		s.memberIdx[m.ID] = i
	}
}

// VotesFor returns the votes cast by member id, in record order.
func (s *State) VotesFor(id int) []Vote {
	if s.Data == nil {
		return nil
	}
	var out []Vote
	for _, v := range s.Data.Votes {
		if v.MemberID == id {
			out = append(out, v)
		}
	}
	return out
}

// Decision is a normalized vote.
type Decision int

const (
	Abstain Decision = iota
	Yea
	Nay
)

// Decide normalizes a raw vote string. Anything other than a yes or no
// (e.g. "Not Voting", "Present") is Abstain.
func Decide(vote string) Decision {
	switch strings.ToLower(strings.TrimSpace(vote)) {
	case "yea", "aye", "yes":
		return Yea
	case "nay", "no":
		return Nay
	default:
		return Abstain
	}
}

// DecisiveVotes counts member id's yea and nay votes.
func (s *State) DecisiveVotes(id int) int {
	n := 0
	for _, v := range s.VotesFor(id) {
		if Decide(v.Vote) != Abstain {
			n++
		}
	}
	return n
}

// ComputeAgreement rebuilds the pairwise agreement table from MetaData and
// Data. Votes by members absent from MetaData are ignored.
func (s *State) ComputeAgreement(ctx context.Context) error {
	members := s.Members()
	s.index()

	// bill -> decision, per member index
	decisions := make([]map[string]Decision, len(members))
	for i := range decisions {
		decisions[i] = make(map[string]Decision)
	}
	if s.Data != nil {
		for _, v := range s.Data.Votes {
			i, ok := s.memberIdx[v.MemberID]
			if !ok {
				continue
			}
			d := Decide(v.Vote)
			if d == Abstain {
				delete(decisions[i], v.Bill)
				continue
			}
			decisions[i][v.Bill] = d
		}
	}

	rows := make([][]Agreement, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range members {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := make([]Agreement, len(members))
			for j := i + 1; j < len(members); j++ {
				row[j] = agree(decisions[i], decisions[j])
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	table := make(map[pair]Agreement)
	for i, row := range rows {
		for j := i + 1; j < len(row); j++ {
			if row[j].Shared == 0 {
				continue
			}
			table[newPair(members[i].ID, members[j].ID)] = row[j]
		}
	}
	s.agreement = table
	return nil
}

func agree(a, b map[string]Decision) Agreement {
	if len(b) < len(a) {
		a, b = b, a
	}
	var shared, same int
	for bill, da := range a {
		db, ok := b[bill]
		if !ok {
			continue
		}
		shared++
		if da == db {
			same++
		}
	}
	if shared == 0 {
		return Agreement{}
	}
	return Agreement{Percent: 100 * float64(same) / float64(shared), Shared: shared}
}

// Agreement returns the agreement between members a and b. ok is false
// when they share no decisive votes, when a == b, or before
// ComputeAgreement has run.
func (s *State) Agreement(a, b int) (Agreement, bool) {
	if a == b || s.agreement == nil {
		return Agreement{}, false
	}
	ag, ok := s.agreement[newPair(a, b)]
	return ag, ok
}

// Pairs returns the number of member pairs with a known agreement.
func (s *State) Pairs() int {
	return len(s.agreement)
}
