package cmd

import (
	"fmt"
	"strings"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/service"
	"github.com/grovetools/manuscript/pkg/tree"
)

// shortID is the prefix shown in listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID expands a hierarchy name or a unique id prefix to a full id.
// Anything it cannot expand is returned as given, so the service reports
// it as a no-op.
func resolveID(s *service.Service, arg string) (string, error) {
	f := s.Forest()
	if h, ok := tree.ParseHierarchy(arg); ok {
		return f.Root(h).ID, nil
	}
	if _, ok := s.ResolveTarget(arg); ok {
		return arg, nil
	}

	var ids []string
	for _, h := range tree.Hierarchies {
		for _, it := range f.Items(h) {
			ids = append(ids, it.ID)
		}
	}
	p := s.Project()
	for _, c := range p.Characters {
		ids = append(ids, c.ID)
	}
	for _, l := range p.Locations {
		ids = append(ids, l.ID)
	}
	return matchPrefix(ids, arg)
}

func resolveSnapshotID(s *service.Service, arg string) (string, error) {
	ids := make([]string, len(s.Project().Snapshots))
	for i, snap := range s.Project().Snapshots {
		ids[i] = snap.ID
	}
	return matchPrefix(ids, arg)
}

func matchPrefix(ids []string, prefix string) (string, error) {
	var found []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return prefix, nil
	case 1:
		return found[0], nil
	}
	return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", prefix, len(found))
}

func resolveIDs(s *service.Service, args []string) ([]string, error) {
	out := make([]string, len(args))
	for i, arg := range args {
		id, err := resolveID(s, arg)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

// parseSnapshotKind maps a flag value to a snapshot kind.
func parseSnapshotKind(s string) (models.SnapshotKind, error) {
	k := models.SnapshotKind(strings.ToLower(s))
	if !k.Valid() {
		return "", fmt.Errorf("unknown snapshot kind %q (want manual, auto or milestone)", s)
	}
	return k, nil
}
