package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kairosplan/kairos/internal/domain"
	"github.com/kairosplan/kairos/internal/planner"
	"github.com/kairosplan/kairos/internal/ranking"
	"github.com/kairosplan/kairos/internal/stats"
	"github.com/kairosplan/kairos/internal/store"
)

var taskRepo = &store.TaskRepo{}

var (
	addDomain   string
	addMinutes  int
	addDeadline string
	addProject  string
)

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a task to the pool",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := domain.ParseDomain(addDomain)
		if err != nil {
			return err
		}

		var deadline *time.Time
		if addDeadline != "" {
			at, err := parseDeadline(addDeadline)
			if err != nil {
				return err
			}
			deadline = &at
		}

		task := domain.Task{
			ID:               uuid.NewString(),
			Description:      strings.Join(args, " "),
			Domain:           d,
			EstimatedMinutes: addMinutes,
			Deadline:         deadline,
			Status:           domain.StatusPending,
			ProjectID:        addProject,
			CreatedAtUnix:    time.Now().Unix(),
		}
		if err := taskRepo.Create(cmd.Context(), db, task); err != nil {
			return err
		}
		logger.Info("task added", zap.String("id", task.ID), zap.String("domain", string(d)))
		fmt.Println(task.ID)
		return nil
	},
}

var doneMinutes int

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := taskRepo.Complete(cmd.Context(), db, args[0], doneMinutes, time.Now()); err != nil {
			return err
		}
		fmt.Println("completed", args[0])
		return nil
	},
}

var rankDomain string

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank pending tasks by priority",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := optionalDomain(rankDomain)
		if err != nil {
			return err
		}

		tasks, err := taskRepo.ListPending(cmd.Context(), db)
		if err != nil {
			return err
		}
		ranked, err := ranking.Rank(tasks, registry.Load(), time.Now(), filter)
		if err != nil {
			return err
		}
		if len(ranked) == 0 {
			fmt.Println("no pending tasks")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tSCORE\tDOMAIN\tMIN\tDEADLINE\tID\tDESCRIPTION")
		for _, rt := range ranked {
			fmt.Fprintf(w, "%d\t%.3f\t%s\t%d\t%s\t%s\t%s\n",
				rt.Rank, rt.Score, rt.Task.Domain, rt.Task.EstimatedMinutes,
				formatDeadline(rt.Task.Deadline), shortID(rt.Task.ID), rt.Task.Description)
		}
		return w.Flush()
	},
}

var (
	nextMinutes int
	nextDomain  string
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Recommend the next task to work on",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := optionalDomain(nextDomain)
		if err != nil {
			return err
		}
		available := planner.NoLimit
		if cmd.Flags().Changed("minutes") {
			available = nextMinutes
		}

		tasks, err := taskRepo.ListPending(cmd.Context(), db)
		if err != nil {
			return err
		}
		task, err := planner.NextTask(tasks, registry.Load(), time.Now(), available, filter)
		if err != nil {
			return err
		}
		if task == nil {
			fmt.Println("nothing fits the available time")
			return nil
		}
		fmt.Printf("%s  [%s, %d min]  %s\n",
			shortID(task.ID), task.Domain, task.EstimatedMinutes, task.Description)
		return nil
	},
}

var (
	planMinutes int
	planFocus   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a time-boxed plan for the day",
	RunE: func(cmd *cobra.Command, args []string) error {
		focus, err := optionalDomain(planFocus)
		if err != nil {
			return err
		}

		tasks, err := taskRepo.ListPending(cmd.Context(), db)
		if err != nil {
			return err
		}
		plan, err := planner.BuildPlan(tasks, registry.Load(), time.Now(), planMinutes, focus)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tDOMAIN\tMIN\tDEADLINE\tDESCRIPTION")
		for i, t := range plan.Tasks {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
				i+1, t.Domain, t.EstimatedMinutes, formatDeadline(t.Deadline), t.Description)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("scheduled %d min, %d min unallocated\n",
			plan.ScheduledMinutes, plan.RemainingMinutes)
		return nil
	},
}

var statsCompleted bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-domain task statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		var tasks []domain.Task
		var err error
		if statsCompleted {
			now := time.Now()
			from := now.AddDate(0, 0, -cfg.ReportWindowDays)
			tasks, err = taskRepo.ListCompletedBetween(cmd.Context(), db, from, now)
		} else {
			tasks, err = taskRepo.ListPending(cmd.Context(), db)
		}
		if err != nil {
			return err
		}

		agg, err := stats.Aggregate(tasks)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DOMAIN\tTASKS\tMINUTES")
		for _, d := range domain.Domains() {
			s := agg[d]
			fmt.Fprintf(w, "%s\t%d\t%d\n", d, s.Count, s.TotalMinutes)
		}
		return w.Flush()
	},
}

var reportDate string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize completed work for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now().AddDate(0, 0, -1)
		if reportDate != "" {
			var err error
			day, err = time.Parse("2006-01-02", reportDate)
			if err != nil {
				return fmt.Errorf("parse --date: %w", err)
			}
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)

		completed, err := taskRepo.ListCompletedBetween(cmd.Context(), db, start, end)
		if err != nil {
			return err
		}
		horizon := time.Duration(cfg.ReportWindowDays) * 24 * time.Hour
		upcoming, err := taskRepo.ListUpcoming(cmd.Context(), db, time.Now(), horizon, 5)
		if err != nil {
			return err
		}

		report, err := stats.BuildCompletionReport(completed, upcoming, start)
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	},
}

func printReport(r *domain.CompletionReport) {
	fmt.Printf("report for %s\n", r.Date)
	fmt.Printf("completed: %d tasks, %d min estimated, %d min actual (efficiency %.2f)\n",
		r.TotalCompleted, r.TotalEstimatedMinutes, r.TotalActualMinutes, r.Efficiency)
	for _, d := range domain.Domains() {
		dr := r.Domains[d]
		fmt.Printf("  %-13s %d tasks, %d/%d min\n", d, dr.Count, dr.ActualMinutes, dr.EstimatedMinutes)
	}
	if len(r.Upcoming) > 0 {
		fmt.Println("upcoming deadlines:")
		for _, t := range r.Upcoming {
			fmt.Printf("  %s  %s  %s\n", formatDeadline(t.Deadline), t.Domain, t.Description)
		}
	}
}

func optionalDomain(s string) (domain.Domain, error) {
	if s == "" {
		return "", nil
	}
	return domain.ParseDomain(s)
}

// parseDeadline accepts a date or a date+time; a bare date means end of
// that day.
func parseDeadline(s string) (time.Time, error) {
	if at, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return at, nil
	}
	at, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse deadline %q (want YYYY-MM-DD or YYYY-MM-DDTHH:MM): %w", s, err)
	}
	return at.Add(24*time.Hour - time.Minute), nil
}

func formatDeadline(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	addCmd.Flags().StringVar(&addDomain, "domain", "", "task domain (work, life_admin, general_life)")
	addCmd.Flags().IntVar(&addMinutes, "minutes", 0, "estimated duration in minutes")
	addCmd.Flags().StringVar(&addDeadline, "deadline", "", "deadline (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
	addCmd.Flags().StringVar(&addProject, "project", "", "project identifier")
	addCmd.MarkFlagRequired("domain")
	addCmd.MarkFlagRequired("minutes")

	doneCmd.Flags().IntVar(&doneMinutes, "minutes", 0, "actual minutes spent")
	doneCmd.MarkFlagRequired("minutes")

	rankCmd.Flags().StringVar(&rankDomain, "domain", "", "restrict ranking to one domain")

	nextCmd.Flags().IntVar(&nextMinutes, "minutes", 0, "available minutes (omit for no limit)")
	nextCmd.Flags().StringVar(&nextDomain, "domain", "", "restrict to one domain")

	planCmd.Flags().IntVar(&planMinutes, "minutes", 0, "working minutes to fill")
	planCmd.Flags().StringVar(&planFocus, "focus", "", "plan only this domain")
	planCmd.MarkFlagRequired("minutes")

	statsCmd.Flags().BoolVar(&statsCompleted, "completed", false, "aggregate recently completed tasks instead of pending")

	reportCmd.Flags().StringVar(&reportDate, "date", "", "report date (YYYY-MM-DD, default yesterday)")
}
