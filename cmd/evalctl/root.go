package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/JonMunkholm/quimbayaeval/internal/columns"
	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/datatable"
	"github.com/JonMunkholm/quimbayaeval/internal/logging"
	"github.com/spf13/cobra"
)

type listOptions struct {
	sort     string
	dir      string
	search   string
	page     int
	pageSize int
}

func newRootCmd(out io.Writer) *cobra.Command {
	var logLevel string
	svc := core.NewService()

	root := &cobra.Command{
		Use:   "evalctl",
		Short: "Consulta las listas de QuimbayaEVAL desde la terminal",
		Long: `evalctl prints users, evaluations, courses, tickets, grades and course
performance from the demo data as terminal tables, sorted and paged the
same way the dashboard's tables are.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logging.New(os.Stderr, logLevel, "text"))
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		listCommand(out, "users", "Lista usuarios", columns.Users(), columns.UserKey,
			func(search string) []core.User { return svc.Users(core.UserFilter{Search: search}) }),
		listCommand(out, "evaluations", "Lista evaluaciones",
			columns.Pick(columns.Evaluations(), "id", "nombre", "curso", "profesor", "tipo", "deadline", "estado", "pendientes"),
			columns.EvaluationKey,
			func(search string) []core.Evaluation {
				return svc.Evaluations(core.EvaluationFilter{Search: search})
			}),
		listCommand(out, "courses", "Lista cursos", columns.Courses(), columns.CourseKey, svc.Courses),
		listCommand(out, "tickets", "Lista solicitudes PQRS", columns.Tickets(), columns.TicketKey,
			func(search string) []core.Ticket { return svc.Tickets(core.TicketFilter{Search: search}) }),
		listCommand(out, "grades", "Lista el historial de calificaciones (--search filtra por curso)",
			columns.Grades(), columns.GradeKey, svc.Grades),
		listCommand(out, "performance", "Lista el rendimiento por curso (--search filtra por curso)",
			columns.Performance(), columns.PerformanceKey, svc.Performance),
	)
	return root
}

// listCommand builds a subcommand that sorts and pages rows with a fresh
// table instance and prints them.
func listCommand[T any](out io.Writer, use, short string, cols []datatable.Column[T], key datatable.KeyFunc[T], rows func(search string) []T) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(out, opts, cols, key, rows(strings.TrimSpace(opts.search)))
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.sort, "sort", "", "column key to sort by ("+sortableKeys(cols)+")")
	f.StringVar(&opts.dir, "dir", "asc", "sort direction: asc or desc")
	f.StringVarP(&opts.search, "search", "s", "", "filter rows")
	f.IntVar(&opts.page, "page", 1, "page to show")
	f.IntVar(&opts.pageSize, "page-size", 10, "rows per page; 0 shows every row")
	return cmd
}

func runList[T any](out io.Writer, opts listOptions, cols []datatable.Column[T], key datatable.KeyFunc[T], rows []T) error {
	t := datatable.New(key)

	if opts.sort != "" {
		dir := datatable.ParseDirection(opts.dir)
		if dir == datatable.DirNone {
			return fmt.Errorf("invalid --dir %q: use asc or desc", opts.dir)
		}
		if !t.SortBy(cols, opts.sort, dir) {
			return fmt.Errorf("cannot sort by %q: sortable columns are %s", opts.sort, sortableKeys(cols))
		}
	}
	if opts.pageSize < 0 {
		return fmt.Errorf("invalid --page-size %d", opts.pageSize)
	}

	v := t.View(rows, cols, datatable.Options[T]{
		Page:         opts.page,
		PageSize:     opts.pageSize,
		EmptyMessage: "Sin resultados",
	})
	slog.Debug("list rendered", "rows", v.Pagination.TotalRows, "sort", opts.sort, "dir", opts.dir)

	_, err := io.WriteString(out, datatable.Text(v))
	return err
}

func sortableKeys[T any](cols []datatable.Column[T]) string {
	return strings.Join(columns.SortableKeys(cols), ", ")
}
