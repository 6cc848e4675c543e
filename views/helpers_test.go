package views_test

import (
	"context"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/deevus/congress-tui/internal/congress"
)

func testDrawContext(w, h uint16) vxfw.DrawContext {
	return vxfw.DrawContext{
		Max: vxfw.Size{Width: w, Height: h},
		Min: vxfw.Size{},
		Characters: func(s string) []vaxis.Character {
			chars := make([]vaxis.Character, 0, len(s))
			for _, r := range s {
				chars = append(chars, vaxis.Character{Grapheme: string(r), Width: 1})
			}
			return chars
		},
	}
}

// newTestState returns a loaded state with agreement computed.
//
//	        HR1  S2   S3   S4
//	1 Alex  Yea  Yea  Nay  Yea
//	2 Bald  Nay  Yea  NV   Nay
//	3 Coll  Yea  Nay  Nay  Yea
//	4 Sand  Nay  Yea  Yea  Nay
func newTestState() *congress.State {
	s := congress.NewState()
	s.MetaData = &congress.Metadata{Members: []congress.Member{
		{ID: 1, Name: "Lamar Alexander", Party: "R", State: "TN"},
		{ID: 2, Name: "Tammy Baldwin", Party: "D", State: "WI"},
		{ID: 3, Name: "Susan Collins", Party: "R", State: "ME"},
		{ID: 4, Name: "Bernard Sanders", Party: "I", State: "VT"},
	}}
	votes := map[int][]string{
		1: {"Yea", "Yea", "Nay", "Yea"},
		2: {"Nay", "Yea", "Not Voting", "Nay"},
		3: {"Yea", "Nay", "Nay", "Yea"},
		4: {"Nay", "Yea", "Yea", "Nay"},
	}
	bills := []string{"HR1", "S2", "S3", "S4"}
	s.Data = &congress.Records{}
	for b, bill := range bills {
		for id := 1; id <= 4; id++ {
			s.Data.Votes = append(s.Data.Votes, congress.Vote{MemberID: id, Bill: bill, Vote: votes[id][b]})
		}
	}
	if err := s.ComputeAgreement(context.Background()); err != nil {
		panic(err)
	}
	return s
}
