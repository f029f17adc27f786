// Package roster loads the canonical dataset of persons, memberships,
// organizations, and posts from a JSON document and serves read-only,
// point-in-time queries over it. The store is immutable between
// reloads: Reload builds a complete new index set and publishes it
// atomically, so in-flight lookups always see a consistent snapshot.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/coolbeans/hansard/pkg/types"
)

// Document is the backing roster format: four top-level record arrays.
type Document struct {
	Persons       []types.Person       `json:"persons"`
	Memberships   []types.Membership   `json:"memberships"`
	Organizations []types.Organization `json:"organizations"`
	Posts         []types.Post         `json:"posts"`
}

// IntegrityError is fatal: the roster document is malformed or
// self-inconsistent, so no index built from it can be trusted.
type IntegrityError struct {
	RecordID string
	Detail   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("roster integrity: %s: %s", e.RecordID, e.Detail)
}

// Store serves queries over the loaded roster.
type Store struct {
	mu   sync.RWMutex
	path string
	snap *snapshot
}

// snapshot is one fully-built, immutable index set.
type snapshot struct {
	doc *Document

	personByID     map[types.PersonID]*types.Person
	membershipByID map[types.MembershipID]*types.Membership
	postByID       map[types.PostID]*types.Post
	orgByID        map[types.OrgID]*types.Organization

	membershipsByPerson map[types.PersonID][]*types.Membership

	names  *NameIndex
	idents map[string]types.PersonID // scheme + "\x00" + identifier
}

// Load reads and indexes a roster document from disk.
func Load(path string) (*Store, error) {
	store := &Store{path: path}
	if err := store.Reload(); err != nil {
		return nil, err
	}
	return store, nil
}

// FromDocument builds a store directly from an in-memory document,
// used by tests and by callers that fetch the roster themselves.
func FromDocument(doc *Document) (*Store, error) {
	snap, err := buildSnapshot(doc)
	if err != nil {
		return nil, err
	}
	return &Store{snap: snap}, nil
}

// Reload re-reads the backing document and atomically swaps in the new
// index set. On any error the previous snapshot stays published.
func (s *Store) Reload() error {
	if s.path == "" {
		return fmt.Errorf("roster store has no backing file")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading roster: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing roster %s: %w", s.path, err)
	}
	snap, err := buildSnapshot(&doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

func (s *Store) snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Person returns a person record by ID.
func (s *Store) Person(id types.PersonID) (*types.Person, bool) {
	p, ok := s.snapshot().personByID[id]
	return p, ok
}

// PersonForMembership maps a membership to its person.
func (s *Store) PersonForMembership(id types.MembershipID) (types.PersonID, bool) {
	m, ok := s.snapshot().membershipByID[id]
	if !ok {
		return "", false
	}
	return m.PersonID, true
}

// MembershipsOfPerson returns a person's tenures, ordered by start date.
func (s *Store) MembershipsOfPerson(id types.PersonID) []*types.Membership {
	return s.snapshot().membershipsByPerson[id]
}

// AllMemberships returns every membership in the current snapshot,
// ordered by ID for deterministic iteration.
func (s *Store) AllMemberships() []*types.Membership {
	snap := s.snapshot()
	all := make([]*types.Membership, 0, len(snap.membershipByID))
	for _, m := range snap.membershipByID {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// Post returns a post record by ID.
func (s *Store) Post(id types.PostID) (*types.Post, bool) {
	p, ok := s.snapshot().postByID[id]
	return p, ok
}

// Organization returns an organization record by ID.
func (s *Store) Organization(id types.OrgID) (*types.Organization, bool) {
	o, ok := s.snapshot().orgByID[id]
	return o, ok
}

// Names returns the derived name index of the current snapshot.
// The returned index is immutable; callers must not retain it across
// reloads if they want fresh data.
func (s *Store) Names() *NameIndex {
	return s.snapshot().names
}

// PersonByIdentifier resolves an external identifier (e.g. a Senedd
// numeric speaker code) to a person.
func (s *Store) PersonByIdentifier(scheme, identifier string) (types.PersonID, bool) {
	id, ok := s.snapshot().idents[scheme+"\x00"+identifier]
	return id, ok
}

// Stats summarizes the loaded roster for the CLI.
type Stats struct {
	Persons       int `json:"persons"`
	Memberships   int `json:"memberships"`
	Organizations int `json:"organizations"`
	Posts         int `json:"posts"`
	NameEntries   int `json:"name_entries"`
}

// Stats returns record counts for the current snapshot.
func (s *Store) Stats() Stats {
	snap := s.snapshot()
	return Stats{
		Persons:       len(snap.doc.Persons),
		Memberships:   len(snap.doc.Memberships),
		Organizations: len(snap.doc.Organizations),
		Posts:         len(snap.doc.Posts),
		NameEntries:   snap.names.Len(),
	}
}

// buildSnapshot validates the document and builds every index.
// Validation failures are IntegrityErrors: dangling references and
// impossible tenures mean the dataset cannot be trusted at all.
func buildSnapshot(doc *Document) (*snapshot, error) {
	snap := &snapshot{
		doc:                 doc,
		personByID:          make(map[types.PersonID]*types.Person, len(doc.Persons)),
		membershipByID:      make(map[types.MembershipID]*types.Membership, len(doc.Memberships)),
		postByID:            make(map[types.PostID]*types.Post, len(doc.Posts)),
		orgByID:             make(map[types.OrgID]*types.Organization, len(doc.Organizations)),
		membershipsByPerson: make(map[types.PersonID][]*types.Membership),
		idents:              make(map[string]types.PersonID),
	}

	for i := range doc.Persons {
		person := &doc.Persons[i]
		if person.ID == "" {
			return nil, &IntegrityError{RecordID: fmt.Sprintf("persons[%d]", i), Detail: "missing id"}
		}
		if _, dup := snap.personByID[person.ID]; dup {
			return nil, &IntegrityError{RecordID: string(person.ID), Detail: "duplicate person id"}
		}
		snap.personByID[person.ID] = person
		for _, ident := range person.Identifiers {
			snap.idents[ident.Scheme+"\x00"+ident.Identifier] = person.ID
		}
	}

	for i := range doc.Organizations {
		org := &doc.Organizations[i]
		if org.ID == "" {
			return nil, &IntegrityError{RecordID: fmt.Sprintf("organizations[%d]", i), Detail: "missing id"}
		}
		snap.orgByID[org.ID] = org
	}

	for i := range doc.Posts {
		post := &doc.Posts[i]
		if post.ID == "" {
			return nil, &IntegrityError{RecordID: fmt.Sprintf("posts[%d]", i), Detail: "missing id"}
		}
		if _, ok := snap.orgByID[post.OrganizationID]; !ok {
			return nil, &IntegrityError{RecordID: string(post.ID), Detail: fmt.Sprintf("post references unknown organization %q", post.OrganizationID)}
		}
		snap.postByID[post.ID] = post
	}

	for i := range doc.Memberships {
		mship := &doc.Memberships[i]
		if mship.ID == "" {
			return nil, &IntegrityError{RecordID: fmt.Sprintf("memberships[%d]", i), Detail: "missing id"}
		}
		if _, dup := snap.membershipByID[mship.ID]; dup {
			return nil, &IntegrityError{RecordID: string(mship.ID), Detail: "duplicate membership id"}
		}
		if _, ok := snap.personByID[mship.PersonID]; !ok {
			return nil, &IntegrityError{RecordID: string(mship.ID), Detail: fmt.Sprintf("membership references unknown person %q", mship.PersonID)}
		}
		if _, ok := snap.postByID[mship.PostID]; !ok {
			return nil, &IntegrityError{RecordID: string(mship.ID), Detail: fmt.Sprintf("membership references unknown post %q", mship.PostID)}
		}
		if _, ok := snap.orgByID[mship.OrganizationID]; !ok {
			return nil, &IntegrityError{RecordID: string(mship.ID), Detail: fmt.Sprintf("membership references unknown organization %q", mship.OrganizationID)}
		}
		if mship.EndDate != "" && mship.StartDate != "" && mship.EndDate.Before(mship.StartDate) {
			return nil, &IntegrityError{RecordID: string(mship.ID), Detail: "end_date precedes start_date"}
		}
		snap.membershipByID[mship.ID] = mship
		snap.membershipsByPerson[mship.PersonID] = append(snap.membershipsByPerson[mship.PersonID], mship)
	}

	if err := checkSeatOverlaps(snap); err != nil {
		return nil, err
	}

	for _, tenures := range snap.membershipsByPerson {
		sort.Slice(tenures, func(i, j int) bool {
			if tenures[i].StartDate != tenures[j].StartDate {
				return tenures[i].StartDate < tenures[j].StartDate
			}
			return tenures[i].ID < tenures[j].ID
		})
	}

	snap.names = buildNameIndex(snap)
	return snap, nil
}

// checkSeatOverlaps rejects two concurrent territorial seats for the
// same person in the same organization. Office posts are exempt (a
// member routinely holds a seat and an office at once), as are seats
// in different legislatures (dual mandates).
func checkSeatOverlaps(snap *snapshot) error {
	for personID, tenures := range snap.membershipsByPerson {
		for i := 0; i < len(tenures); i++ {
			for j := i + 1; j < len(tenures); j++ {
				a, b := tenures[i], tenures[j]
				if a.OrganizationID != b.OrganizationID {
					continue
				}
				postA, postB := snap.postByID[a.PostID], snap.postByID[b.PostID]
				if postA.IsOffice() || postB.IsOffice() {
					continue
				}
				if a.Overlaps(b) {
					return &IntegrityError{
						RecordID: string(personID),
						Detail: fmt.Sprintf("memberships %s and %s hold two seats in %s concurrently",
							a.ID, b.ID, a.OrganizationID),
					}
				}
			}
		}
	}
	return nil
}
