package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bookshelf/internal/app"
	"bookshelf/internal/config"
	"bookshelf/internal/models"
	"bookshelf/internal/shell"
)

type globalFlags struct {
	file     string
	backend  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Manage a personal book catalog",
		Long:          "bookshelf keeps a catalog of your books in a local file.\nRun without a command to start the interactive menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app.App) error {
				return a.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}

	root.PersistentFlags().StringVarP(&flags.file, "file", "f", "", "catalog file (env CATALOG_FILE, default "+config.DefaultCatalogPath+")")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: json, sqlite or memory (env CATALOG_BACKEND)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (env LOG_LEVEL, default "+config.DefaultLogLevel+")")

	root.AddCommand(
		newListCmd(flags),
		newAddCmd(flags),
		newDeleteCmd(flags),
		newSearchCmd(flags),
		newStatusCmd(flags),
	)
	return root
}

// loadConfig reads .env and the environment, then applies flags on top
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	// Load .env file if it exists, otherwise use the system environment
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("file") {
		cfg.CatalogPath = flags.file
	}
	if cmd.Flags().Changed("backend") {
		if cfg.Backend, err = config.ParseBackend(flags.backend); err != nil {
			return nil, err
		}
		// the default location follows the backend unless one was given
		if !cmd.Flags().Changed("file") && strings.TrimSpace(os.Getenv("CATALOG_FILE")) == "" {
			cfg.CatalogPath = config.DefaultPath(cfg.Backend)
		}
	}
	if cmd.Flags().Changed("log-level") {
		if cfg.LogLevel, err = config.ParseLogLevel(flags.logLevel); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// withApp builds the application, runs fn and shuts it down
func withApp(cmd *cobra.Command, flags *globalFlags, fn func(a *app.App) error) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	runErr := fn(a)
	if err := a.Shutdown(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func newListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app.App) error {
				books := a.Catalog().List()
				if len(books) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "The library has no books.")
					return nil
				}
				return shell.RenderBooks(cmd.OutOrStdout(), books)
			})
		},
	}
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add TITLE AUTHOR YEAR",
		Short: "Add a book",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("year must be a number: %q", args[2])
			}
			return withApp(cmd, flags, func(a *app.App) error {
				book, err := a.Catalog().Add(cmd.Context(), args[0], args[1], year)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Book '%s' added to the library with id %d.\n", book.Title, book.ID)
				return nil
			})
		},
	}
}

func newDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a book by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(a *app.App) error {
				deleted, err := a.Catalog().Delete(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("book with id %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Book with id %d deleted from the library.\n", id)
				return nil
			})
		},
	}
}

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search books by title, author or year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := models.ParseField(field)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(a *app.App) error {
				found, err := a.Catalog().Search(args[0], f)
				if err != nil {
					return err
				}
				if len(found) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No books found.")
					return nil
				}
				return shell.RenderBooks(cmd.OutOrStdout(), found)
			})
		},
	}
	cmd.Flags().StringVar(&field, "by", "title", "field to search: title, author or year")
	return cmd
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set the lending status of a book (available or lent)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := models.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(a *app.App) error {
				updated, err := a.Catalog().UpdateStatus(cmd.Context(), id, status)
				if err != nil {
					return err
				}
				if !updated {
					return fmt.Errorf("book with id %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Status of book with id %d updated to '%s'.\n", id, status)
				return nil
			})
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("book id must be a number: %q", s)
	}
	return id, nil
}
