package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/adriangreen/ideas/internal/catalog"
)

func newIdeasCommand(a *app) *cobra.Command {
	var status, query string

	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "List and search ideas from the ideas repo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.ideasRoot(cmd)
			if err != nil {
				return err
			}
			ideas, err := a.store.LoadIdeas(cmd.Context(), root)
			if err != nil {
				return err
			}

			q := catalog.NormalizeQuery(query)
			widths := []int{22, 10, 12}
			header(a.out, widths, "FOLDER", "STATUS", "MODIFIED", "DESCRIPTION")
			for _, idea := range ideas {
				if status != "" && idea.Status != status {
					continue
				}
				if !catalog.IdeaMatches(idea, q) {
					continue
				}
				fmt.Fprintln(a.out, row(widths,
					truncate(idea.Folder, 21),
					statusStyle(idea.Status).Render(idea.Status),
					idea.Modified,
					truncate(idea.Description, 40),
				))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "filter by status (active, dormant, unknown)")
	cmd.Flags().StringVarP(&query, "search", "q", "", "search term")
	return cmd
}

func newProjectsCommand(a *app) *cobra.Command {
	var (
		category     string
		query        string
		group        bool
		analyzedOnly bool
		showAnalysis bool
	)

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List and search projects from the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.store.LoadProjects()
			if err != nil {
				return err
			}

			q := catalog.NormalizeQuery(query)
			var filtered []catalog.Project
			for _, p := range projects {
				if analyzedOnly && !a.store.HasAnalysisFile(p.Name) {
					continue
				}
				if category != "" && p.Category != category {
					continue
				}
				if !catalog.ProjectMatches(p, q) {
					continue
				}
				filtered = append(filtered, p)
			}

			if group {
				printProjectGroups(a, filtered, showAnalysis)
				return nil
			}
			printProjectTable(a, filtered, showAnalysis)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	cmd.Flags().StringVarP(&query, "search", "q", "", "search term")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "group by category")
	cmd.Flags().BoolVarP(&analyzedOnly, "analyzed", "a", false, "only show projects with analysis files")
	cmd.Flags().BoolVar(&showAnalysis, "show-analysis", false, "show analysis status column")
	return cmd
}

func analysisMark(a *app, name string) string {
	if a.store.HasAnalysisFile(name) {
		return okStyle.Render("[A]")
	}
	return dimStyle.Render("[ ]")
}

func printProjectTable(a *app, projects []catalog.Project, showAnalysis bool) {
	if showAnalysis {
		widths := []int{4, 20, 12, 12}
		header(a.out, widths, "", "NAME", "CATEGORY", "LAST_COMMIT", "DESCRIPTION")
		for _, p := range projects {
			fmt.Fprintln(a.out, row(widths,
				analysisMark(a, p.Name),
				truncate(p.Name, 19),
				colored(projectColors, p.Category),
				p.LastCommit,
				truncate(cleanDesc(p.Blurb()), 30),
			))
		}
		return
	}

	widths := []int{22, 12, 12, 10}
	header(a.out, widths, "NAME", "CATEGORY", "LAST_COMMIT", "SOURCE", "DESCRIPTION")
	for _, p := range projects {
		fmt.Fprintln(a.out, row(widths,
			truncate(p.Name, 21),
			colored(projectColors, p.Category),
			p.LastCommit,
			p.Source,
			truncate(cleanDesc(p.Blurb()), 30),
		))
	}
}

func printProjectGroups(a *app, projects []catalog.Project, showAnalysis bool) {
	groups := make(map[string][]catalog.Project)
	var categories []string
	for _, p := range projects {
		if _, ok := groups[p.Category]; !ok {
			categories = append(categories, p.Category)
		}
		groups[p.Category] = append(groups[p.Category], p)
	}
	slices.Sort(categories)

	for _, c := range categories {
		group := groups[c]
		fmt.Fprintf(a.out, "\n%s (%d)\n", sectionStyle.Render("=== "+c+" ==="), len(group))
		for _, p := range group {
			desc := cleanDesc(p.Blurb())
			if showAnalysis {
				fmt.Fprintf(a.out, "  %s %s\n", analysisMark(a, p.Name),
					row([]int{18, 12}, p.Name, p.LastCommit, truncate(desc, 30)))
				continue
			}
			fmt.Fprintf(a.out, "  %s\n", row([]int{20, 12}, p.Name, p.LastCommit, truncate(desc, 35)))
		}
	}
}

func newPlansCommand(a *app) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List and search assistant plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := a.store.LoadPlans(cmd.Context())
			if err != nil {
				return err
			}

			q := catalog.NormalizeQuery(query)
			widths := []int{35, 12}
			header(a.out, widths, "NAME", "MODIFIED", "TITLE")
			for _, p := range plans {
				if !catalog.PlanMatches(p, q) {
					continue
				}
				fmt.Fprintln(a.out, row(widths, truncate(p.Name, 34), p.Modified, truncate(p.Title, 45)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "search", "q", "", "search term")
	return cmd
}

func newDotfilesCommand(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "dotfiles",
		Short: "List DX tools and configs from dotfiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.store.LoadDotfiles()
			if err != nil {
				return err
			}

			widths := []int{20, 14, 30}
			header(a.out, widths, "NAME", "CATEGORY", "PATH", "DESCRIPTION")
			for _, d := range items {
				if category != "" && d.Category != category {
					continue
				}
				fmt.Fprintln(a.out, row(widths,
					truncate(d.Name, 19),
					colored(dotfileColors, d.Category),
					truncate(d.Path, 29),
					truncate(d.Description, 40),
				))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "",
		"filter by category (dx-script, dx-tool, shell-config, app-config, tool-list, claude-skill)")
	return cmd
}

func newSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search across ideas, projects, plans and dotfiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			ctx := cmd.Context()

			root, err := a.ideasRoot(cmd)
			if err != nil {
				return err
			}
			ideas, err := a.store.LoadIdeas(ctx, root)
			if err != nil {
				return err
			}
			projects, err := a.store.LoadProjects()
			if err != nil {
				return err
			}
			plans, err := a.store.LoadPlans(ctx)
			if err != nil {
				return err
			}
			dotfiles, err := a.store.LoadDotfiles()
			if err != nil {
				return err
			}

			results := catalog.Search(query, ideas, projects, plans, dotfiles)
			byKind := make(map[catalog.Kind][]catalog.SearchResult)
			for _, r := range results {
				byKind[r.Kind] = append(byKind[r.Kind], r)
			}

			sections := []struct {
				kind  catalog.Kind
				title string
			}{
				{catalog.KindIdea, "Ideas"},
				{catalog.KindProject, "Projects"},
				{catalog.KindPlan, "Plans"},
				{catalog.KindDotfile, "Dotfiles"},
			}
			for _, s := range sections {
				matches := byKind[s.kind]
				if len(matches) == 0 {
					continue
				}
				fmt.Fprintln(a.out)
				section(a.out, fmt.Sprintf("=== %s (%d) ===", s.title, len(matches)))
				for _, r := range matches {
					fmt.Fprintf(a.out, "  %s\n", searchLine(r, ideas, projects, dotfiles))
				}
			}

			fmt.Fprintf(a.out, "\n%s total matches for '%s'\n", headerStyle.Render(fmt.Sprint(len(results))), query)
			return nil
		},
	}
}

// searchLine renders one match with the tag its collection shows
func searchLine(r catalog.SearchResult, ideas []catalog.Idea, projects []catalog.Project, dotfiles []catalog.DxItem) string {
	switch r.Kind {
	case catalog.KindIdea:
		return row([]int{20}, r.Name, fmt.Sprintf("[%s] %s", ideas[r.Index].Status, truncate(r.Description, 40)))
	case catalog.KindProject:
		return row([]int{20}, r.Name, fmt.Sprintf("[%s] %s", projects[r.Index].Category, truncate(r.Description, 40)))
	case catalog.KindPlan:
		return row([]int{30}, r.Name, truncate(r.Description, 45))
	case catalog.KindDotfile:
		return row([]int{20}, r.Name, fmt.Sprintf("[%s] %s", dotfiles[r.Index].Category, truncate(r.Description, 40)))
	}
	return r.Name
}
