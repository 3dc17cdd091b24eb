// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
	"github.com/urfave/cli/v3"
)

// newApp builds the root command with every subcommand registered on r.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "roster",
		Usage:   "Keep student, course and instructor records",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Before:   r.Before,
		After:    r.After,
		Commands: r.register(),
	}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}
}

func yesFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Confirm the deletion",
	}
}

func idArgument() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id"}}
}

// studentCommand handles student records
func studentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "student",
		Aliases: []string{"students"},
		Usage:   "Manage students",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create a student",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "courses",
						Usage: "Comma-separated course ids to enroll in",
					},
				},
				Action: r.StudentAdd,
			},
			{
				Name:   "list",
				Usage:  "List students",
				Flags:  jsonFlags(),
				Action: r.StudentList,
			},
			{
				Name:      "show",
				Usage:     "Show one student with their courses",
				Arguments: idArgument(),
				Flags:     jsonFlags(),
				Action:    r.StudentShow,
			},
			{
				Name:      "edit",
				Usage:     "Rename a student",
				Arguments: idArgument(),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "New name",
					},
				},
				Action: r.StudentEdit,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a student",
				Arguments: idArgument(),
				Flags:     []cli.Flag{yesFlag()},
				Action:    r.StudentDelete,
			},
		},
	}
}

// courseCommand handles course records and instructor assignment
func courseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "course",
		Aliases: []string{"courses"},
		Usage:   "Manage courses",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create a course",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:  "credits",
						Usage: "Credit value (>= 0)",
					},
				},
				Action: r.CourseAdd,
			},
			{
				Name:   "list",
				Usage:  "List courses",
				Flags:  jsonFlags(),
				Action: r.CourseList,
			},
			{
				Name:      "show",
				Usage:     "Show one course with its instructors and enrolled students",
				Arguments: idArgument(),
				Flags:     jsonFlags(),
				Action:    r.CourseShow,
			},
			{
				Name:      "edit",
				Usage:     "Change a course's name or credits",
				Arguments: idArgument(),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "New name",
					},
					&cli.FloatFlag{
						Name:  "credits",
						Usage: "New credit value",
					},
				},
				Action: r.CourseEdit,
			},
			{
				Name:      "assign",
				Usage:     "Replace a course's instructors",
				Arguments: idArgument(),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "instructors",
						Usage: "Comma-separated instructor ids; unknown ids are ignored",
					},
				},
				Action: r.CourseAssign,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a course and unenroll its students",
				Arguments: idArgument(),
				Flags:     []cli.Flag{yesFlag()},
				Action:    r.CourseDelete,
			},
		},
	}
}

// instructorCommand handles instructor records
func instructorCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "instructor",
		Aliases: []string{"instructors"},
		Usage:   "Manage instructors",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create an instructor",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "department",
						Aliases: []string{"dept"},
						Usage:   "Department name",
					},
				},
				Action: r.InstructorAdd,
			},
			{
				Name:   "list",
				Usage:  "List instructors",
				Flags:  jsonFlags(),
				Action: r.InstructorList,
			},
			{
				Name:      "show",
				Usage:     "Show one instructor with their courses",
				Arguments: idArgument(),
				Flags:     jsonFlags(),
				Action:    r.InstructorShow,
			},
			{
				Name:      "edit",
				Usage:     "Change an instructor's name or department",
				Arguments: idArgument(),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "New name",
					},
					&cli.StringFlag{
						Name:    "department",
						Aliases: []string{"dept"},
						Usage:   "New department; pass an empty value to clear it",
					},
				},
				Action: r.InstructorEdit,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete an instructor and remove them from every course",
				Arguments: idArgument(),
				Flags:     []cli.Flag{yesFlag()},
				Action:    r.InstructorDelete,
			},
		},
	}
}

// enrollCommand handles student to course links
func enrollCommand(r *Runner) *cli.Command {
	pair := func() []cli.Argument {
		return []cli.Argument{
			&cli.StringArg{Name: "student"},
			&cli.StringArg{Name: "course"},
		}
	}

	return &cli.Command{
		Name:  "enroll",
		Usage: "Enroll students in courses",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Enroll a student in a course",
				Arguments: pair(),
				Action:    r.EnrollAdd,
			},
			{
				Name:      "drop",
				Usage:     "Remove a student from a course",
				Arguments: pair(),
				Action:    r.EnrollDrop,
			},
		},
	}
}

// statsCommand prints the dashboard counts
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show record counts",
		Flags:  jsonFlags(),
		Action: r.Stats,
	}
}

// exportCommand writes a collection to a file
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a collection as CSV, Markdown, text or (students only) XLSX",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "collection",
				Usage: "students, courses or instructors",
				Value: models.StudentsCollection,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "csv, md, txt or xlsx",
				Value:   formatter.FormatCSV,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: {collection}.{format}); the directory with --all",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Export every collection; --format takes a comma-separated list including json",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent writers for --all",
				Value: 3,
			},
		},
		Action: r.Export,
	}
}

// importCommand reads student names from a workbook
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Create students from column A of an XLSX file (first row is a header)",
		Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
		Action:    r.Import,
	}
}

// setupCommand writes the default config and prepares storage
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create a config file and initialize storage",
		Action: r.Setup,
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal UI",
		Action: r.TUI,
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a read-only JSON view of the records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Override server.host",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override server.port",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Override server.watch",
			},
		},
		Action: r.Serve,
	}
}
