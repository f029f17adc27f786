package resolver

import "github.com/coolbeans/hansard/pkg/types"

// session is the per-document state: speakers already matched in this
// debate, and office-to-person associations observed in it. It exists
// only to resolve same-debate back-references (a bare office mention
// resolving to whoever was matched earlier as holding that office) and
// is cleared at every document boundary.
type session struct {
	recent      map[types.PersonID]bool
	recentOrder []types.PersonID
	officeSeen  map[string]types.PersonID // canonical office label -> person
}

func newSession() *session {
	return &session{
		recent:     make(map[types.PersonID]bool),
		officeSeen: make(map[string]types.PersonID),
	}
}

func (s *session) noteSpeaker(id types.PersonID) {
	if id == "" || s.recent[id] {
		return
	}
	s.recent[id] = true
	s.recentOrder = append(s.recentOrder, id)
}

func (s *session) noteOffice(canonical string, id types.PersonID) {
	if canonical == "" || id == "" {
		return
	}
	s.officeSeen[canonical] = id
}
