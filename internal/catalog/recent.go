package catalog

import (
	"cmp"
	"context"
	"slices"
)

// RecentActivity returns inventoried projects with a commit in the last
// days, newest first.
func (s *Store) RecentActivity(ctx context.Context, days int) ([]RecentProject, error) {
	projects, err := s.LoadProjects()
	if err != nil {
		return nil, err
	}

	var recent []RecentProject
	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		commit, ok := s.git.LastCommitWithin(ctx, p.Path, days)
		if !ok || commit.Date == "" {
			continue
		}
		recent = append(recent, RecentProject{Name: p.Name, Date: commit.Date, Message: commit.Subject})
	}

	slices.SortStableFunc(recent, func(a, b RecentProject) int {
		return cmp.Compare(b.Date, a.Date)
	})
	return recent, nil
}
